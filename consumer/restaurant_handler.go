package consumer

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/tavolo/search-api-go/catalog"
	log "github.com/tavolo/search-api-go/pkg/logger"
	"github.com/tavolo/search-api-go/pkg/validator"
)

type RestaurantMessagePayload struct {
	Action     string        `json:"action"`
	Restaurant catalog.Venue `json:"restaurant"`
}

func (consumer *Consumer) restaurantHandle(message *sarama.ConsumerMessage, session sarama.ConsumerGroupSession) {
	var payload RestaurantMessagePayload
	if err := jsoniter.Unmarshal(message.Value, &payload); err != nil {
		log.Logger().Error("restaurantHandle deserialization error", zap.String("payload", string(message.Value)), zap.Error(err))
		consumer.deadLetter(message)
		session.MarkMessage(message, "")
		session.Commit()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch payload.Action {
	case ActionUpsert:
		if err = validator.Validate(payload.Restaurant); err == nil {
			err = consumer.pipeline.UpsertVenue(ctx, payload.Restaurant)
		}
	case ActionDelete:
		err = consumer.pipeline.DeleteVenue(ctx, payload.Restaurant.ID)
	default:
		log.Logger().Warn("restaurantHandle unknown action", zap.String("action", payload.Action))
	}

	if err != nil {
		log.Logger().Error("error applying restaurant event", zap.String("restaurantId", payload.Restaurant.ID), zap.Error(err))
		consumer.deadLetter(message)
	}

	session.MarkMessage(message, "")
	session.Commit()
}
