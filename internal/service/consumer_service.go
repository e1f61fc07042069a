package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-vocabcoach-be/internal/dto"
	"ai-vocabcoach-be/internal/repository/specification"
	"ai-vocabcoach-be/internal/repository/unitofwork"
	"ai-vocabcoach-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
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
	var payload dto.PublishEmbedMemoryMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for MemoryId: %s", payload.MemoryId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	memories := uow.MemoryRepository()

	entries, err := memories.FindAll(ctx, specification.ByID{ID: payload.MemoryId})
	if err != nil {
		log.Printf("[ERROR] Failed to get memory %s: %v", payload.MemoryId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if len(entries) == 0 {
		log.Printf("[ERROR] Memory entry not found: %s", payload.MemoryId)
		msg.Ack() // Entry deleted? Ack.
		return
	}
	entry := entries[0]

	vec, err := cs.embeddingProvider.Generate(ctx, entry.Content, embedding.TaskDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for memory %s: %v", entry.Id, err)
		msg.Nack()
		return
	}

	if err := memories.UpdateEmbedding(ctx, entry.Id, vec); err != nil {
		log.Printf("[ERROR] Failed to store embedding for memory %s: %v", entry.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
