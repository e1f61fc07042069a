package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-vocabcoach-be/internal/dto"
	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/pkg/logger"
	"ai-vocabcoach-be/internal/repository/unitofwork"
	"ai-vocabcoach-be/pkg/embedding"

	"github.com/google/uuid"
)

// IMemoryService maintains long-term learner observations. All operations
// are best-effort from the caller's perspective: a failed memory write or
// recall degrades personalisation but never fails a practice session.
type IMemoryService interface {
	Add(ctx context.Context, userId uuid.UUID, contents []string)
	Recall(ctx context.Context, userId uuid.UUID, query string) string
}

type memoryService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.Provider
	recallLimit       int
	log               logger.ILogger
}

func NewMemoryService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.Provider,
	recallLimit int,
	log logger.ILogger,
) IMemoryService {
	return &memoryService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		recallLimit:       recallLimit,
		log:               log,
	}
}

func (s *memoryService) Add(ctx context.Context, userId uuid.UUID, contents []string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	memories := uow.MemoryRepository()

	for _, content := range contents {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		entry := entity.MemoryEntry{
			Id:        uuid.New(),
			UserId:    userId,
			Content:   content,
			CreatedAt: time.Now(),
		}
		if err := memories.Create(ctx, &entry); err != nil {
			s.log.Warn("memory", "Failed to store memory entry", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
			continue
		}

		msgJson, err := json.Marshal(dto.PublishEmbedMemoryMessage{MemoryId: entry.Id})
		if err != nil {
			continue
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.log.Warn("memory", "Failed to queue embedding job", map[string]interface{}{
				"memory_id": entry.Id,
				"error":     err.Error(),
			})
		}
	}
}

// Recall embeds the query and returns the nearest stored observations as a
// newline-joined block, empty when nothing is found or the backend fails.
func (s *memoryService) Recall(ctx context.Context, userId uuid.UUID, query string) string {
	queryVec, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskQuery)
	if err != nil {
		s.log.Warn("memory", "Failed to embed recall query", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return ""
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.MemoryRepository().SearchNearest(ctx, userId, queryVec, s.recallLimit)
	if err != nil {
		s.log.Warn("memory", "Memory recall failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return ""
	}

	notes := make([]string, 0, len(entries))
	for _, e := range entries {
		notes = append(notes, "- "+e.Content)
	}
	return strings.Join(notes, "\n")
}
