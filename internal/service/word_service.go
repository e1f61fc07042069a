package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"ai-vocabcoach-be/internal/dto"
	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/repository/specification"
	"ai-vocabcoach-be/internal/repository/unitofwork"
	"ai-vocabcoach-be/pkg/confidence"

	"github.com/google/uuid"
)

type IWordService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWordRequest) (*dto.WordResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateWordRequest) (*dto.WordResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userId uuid.UUID) (int64, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.WordResponse, error)
	List(ctx context.Context, userId uuid.UUID, page, limit int) ([]*dto.WordResponse, error)
	ImportCSV(ctx context.Context, userId uuid.UUID, sourceName string, r io.Reader) (*dto.ImportWordsResponse, error)
	ProgressSummary(ctx context.Context, userId uuid.UUID) (*dto.ProgressSummaryResponse, error)
}

type wordService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewWordService(uowFactory unitofwork.RepositoryFactory) IWordService {
	return &wordService{
		uowFactory: uowFactory,
	}
}

func (s *wordService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWordRequest) (*dto.WordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	word := entity.Word{
		Id:        uuid.New(),
		UserId:    userId,
		Word:      strings.TrimSpace(req.Word),
		Pinyin:    strings.TrimSpace(req.Pinyin),
		Meaning:   strings.TrimSpace(req.Meaning),
		CreatedAt: time.Now(),
	}
	if req.SourceName != "" {
		source := req.SourceName
		word.SourceName = &source
	}

	if err := uow.WordRepository().Create(ctx, &word); err != nil {
		return nil, err
	}
	return wordToResponse(&word), nil
}

func (s *wordService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateWordRequest) (*dto.WordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	words := uow.WordRepository()

	word, err := words.FindOne(ctx, specification.ByID{ID: req.Id}, specification.WordOwnedByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}

	word.Word = strings.TrimSpace(req.Word)
	word.Pinyin = strings.TrimSpace(req.Pinyin)
	word.Meaning = strings.TrimSpace(req.Meaning)

	if err := words.Update(ctx, word); err != nil {
		return nil, err
	}
	return wordToResponse(word), nil
}

func (s *wordService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	words := uow.WordRepository()

	word, err := words.FindOne(ctx, specification.ByID{ID: id}, specification.WordOwnedByUser{UserID: userId})
	if err != nil {
		return err
	}
	if word == nil {
		return ErrWordNotFound
	}
	return words.Delete(ctx, id)
}

func (s *wordService) DeleteAll(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.WordRepository().DeleteAllByUserId(ctx, userId)
}

func (s *wordService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.WordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	word, err := uow.WordRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WordOwnedByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}
	return wordToResponse(word), nil
}

func (s *wordService) List(ctx context.Context, userId uuid.UUID, page, limit int) ([]*dto.WordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.WordOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})
	}

	words, err := uow.WordRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.WordResponse, len(words))
	for i, w := range words {
		responses[i] = wordToResponse(w)
	}
	return responses, nil
}

// ImportCSV ingests a word list exported from flashcard tools. Expected
// columns: word, pinyin, meaning. A header row is detected and skipped.
func (s *wordService) ImportCSV(ctx context.Context, userId uuid.UUID, sourceName string, r io.Reader) (*dto.ImportWordsResponse, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &dto.ImportWordsResponse{}
	var batch []*entity.Word

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		if line == 1 && looksLikeHeader(record) {
			continue
		}
		if len(record) < 3 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: expected 3 columns, got %d", line, len(record)))
			continue
		}

		wordText := strings.TrimSpace(record[0])
		meaning := strings.TrimSpace(record[2])
		if wordText == "" || meaning == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: word and meaning are required", line))
			continue
		}

		word := &entity.Word{
			Id:        uuid.New(),
			UserId:    userId,
			Word:      wordText,
			Pinyin:    strings.TrimSpace(record[1]),
			Meaning:   meaning,
			CreatedAt: time.Now(),
		}
		if sourceName != "" {
			source := sourceName
			word.SourceName = &source
		}
		batch = append(batch, word)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WordRepository().CreateAll(ctx, batch); err != nil {
		return nil, err
	}
	result.Imported = len(batch)
	return result, nil
}

func (s *wordService) ProgressSummary(ctx context.Context, userId uuid.UUID) (*dto.ProgressSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	words, err := uow.WordRepository().FindAll(ctx, specification.WordOwnedByUser{UserID: userId})
	if err != nil {
		return nil, err
	}

	summary := &dto.ProgressSummaryResponse{
		TotalWords:   len(words),
		StatusCounts: map[string]int{},
	}
	var total float64
	for _, w := range words {
		total += w.ConfidenceScore
		status := w.Status()
		summary.StatusCounts[status]++
		if status == "Mastered" {
			summary.MasteredWords++
		}
	}
	if len(words) > 0 {
		summary.AverageScore = total / float64(len(words))
	}
	return summary, nil
}

func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "word" || first == "hanzi" || first == "term"
}

func wordToResponse(w *entity.Word) *dto.WordResponse {
	source := ""
	if w.SourceName != nil {
		source = *w.SourceName
	}
	return &dto.WordResponse{
		Id:              w.Id,
		Word:            w.Word,
		Pinyin:          w.Pinyin,
		Meaning:         w.Meaning,
		ConfidenceScore: w.ConfidenceScore,
		Status:          confidence.StatusFor(w.ConfidenceScore),
		SourceName:      source,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}
