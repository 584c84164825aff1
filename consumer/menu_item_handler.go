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

const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

type MenuItemMessagePayload struct {
	Action  string          `json:"action"`
	Product catalog.Product `json:"product"`
}

func (consumer *Consumer) menuItemHandle(message *sarama.ConsumerMessage, session sarama.ConsumerGroupSession) {
	var payload MenuItemMessagePayload
	if err := jsoniter.Unmarshal(message.Value, &payload); err != nil {
		log.Logger().Error("menuItemHandle deserialization error", zap.String("payload", string(message.Value)), zap.Error(err))
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
		if err = validator.Validate(payload.Product); err == nil {
			err = consumer.pipeline.UpsertProduct(ctx, payload.Product)
		}
	case ActionDelete:
		err = consumer.pipeline.DeleteProduct(ctx, payload.Product.ID)
	default:
		log.Logger().Warn("menuItemHandle unknown action", zap.String("action", payload.Action))
	}

	if err != nil {
		log.Logger().Error("error applying menu item event", zap.String("productId", payload.Product.ID), zap.Error(err))
		consumer.deadLetter(message)
	}

	session.MarkMessage(message, "")
	session.Commit()
}
