package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-voiceshop-be/internal/dto"
	"ai-voiceshop-be/internal/repository/contract"
	"ai-voiceshop-be/internal/repository/specification"
	"ai-voiceshop-be/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds catalog products off the request path. Upserts
// publish the product id; this worker fetches the row, embeds its document
// text and writes the vector back.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	productRepo       contract.ProductRepository
	embeddingProvider embedding.EmbeddingProvider
	embeddingDim      int
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	productRepo contract.ProductRepository,
	embeddingProvider embedding.EmbeddingProvider,
	embeddingDim int,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		productRepo:       productRepo,
		embeddingProvider: embeddingProvider,
		embeddingDim:      embeddingDim,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for product %s", payload.ProductId)

	product, err := cs.productRepo.FindOne(ctx, specification.ByProductID{ID: payload.ProductId})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", payload.ProductId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		log.Printf("[WARN] Product %s no longer exists, skipping", payload.ProductId)
		msg.Ack()
		return
	}

	vector, err := cs.embeddingProvider.Generate(ctx, product.EmbeddingText(), embedding.TaskRetrievalDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}

	if cs.embeddingDim > 0 && len(vector) != cs.embeddingDim {
		// Misconfigured provider/index pairing. Retrying will not change the
		// dimension, so drop the message instead of redelivering forever.
		log.Printf("[ERROR] Embedding dimension mismatch for product %s: provider returned %d, index expects %d",
			payload.ProductId, len(vector), cs.embeddingDim)
		msg.Ack()
		return
	}

	if err := cs.productRepo.UpdateEmbedding(ctx, product.Id, vector); err != nil {
		log.Printf("[ERROR] Failed to store embedding for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Embedded product %s (%d dimensions)", product.Id, len(vector))
	msg.Ack()
}
