package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"ai-vocabcoach-be/internal/config"
	"ai-vocabcoach-be/internal/dto"
	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/pkg/logger"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/specification"
	"ai-vocabcoach-be/internal/repository/unitofwork"
	"ai-vocabcoach-be/pkg/confidence"
	"ai-vocabcoach-be/pkg/evaluator"
	"ai-vocabcoach-be/pkg/events"
	pktNats "ai-vocabcoach-be/pkg/nats"
	"ai-vocabcoach-be/pkg/practice"

	"github.com/google/uuid"
)

const (
	fallbackSummary = "Session completed. Keep practicing!"

	memoryRecallQuery = "learning preferences, recurring mistakes and struggles"
)

type IPracticeService interface {
	StartSession(ctx context.Context, userId uuid.UUID, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	AdvanceWord(ctx context.Context, userId, sessionId uuid.UUID) (*dto.AdvanceWordResponse, error)
	CompleteSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.CompleteSessionResponse, error)
	GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionHistoryResponse, error)
}

type practiceService struct {
	uowFactory     unitofwork.RepositoryFactory
	runner         evaluator.Runner
	memoryService  IMemoryService
	eventPublisher *pktNats.Publisher
	cfg            config.PracticeConfig
	log            logger.ILogger
	shuffle        func(words []*entity.Word)
}

func NewPracticeService(
	uowFactory unitofwork.RepositoryFactory,
	runner evaluator.Runner,
	memoryService IMemoryService,
	eventPublisher *pktNats.Publisher,
	cfg config.PracticeConfig,
	log logger.ILogger,
) IPracticeService {
	return &practiceService{
		uowFactory:     uowFactory,
		runner:         runner,
		memoryService:  memoryService,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		log:            log,
		shuffle: func(words []*entity.Word) {
			rand.Shuffle(len(words), func(i, j int) {
				words[i], words[j] = words[j], words[i]
			})
		},
	}
}

func (s *practiceService) StartSession(ctx context.Context, userId uuid.UUID, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	requested := s.cfg.DefaultWordsPerSession
	if user.WordsPerSession != nil {
		requested = *user.WordsPerSession
	}
	if req != nil && req.WordCount > 0 {
		requested = req.WordCount
	}

	eligible, err := uow.WordRepository().FindEligibleByUserId(ctx, userId, confidence.MasteryThreshold)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleWords
	}

	// Uniform sample: shuffle and take the head.
	s.shuffle(eligible)
	if requested < len(eligible) {
		eligible = eligible[:requested]
	}

	session := entity.PracticeSession{
		Id:              uuid.New(),
		UserId:          userId,
		StartedAt:       time.Now(),
		WordsPerSession: len(eligible),
	}
	if err := uow.PracticeSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	sessionWords := make([]*entity.SessionWord, len(eligible))
	for i, w := range eligible {
		sessionWords[i] = &entity.SessionWord{
			WordId:    w.Id,
			SessionId: session.Id,
			WordOrder: i,
			LoadedAt:  time.Now(),
			Word:      w,
		}
	}
	if err := uow.SessionWordRepository().CreateAll(ctx, sessionWords); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "SESSION_STARTED", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
		"word_count": len(sessionWords),
	})

	pctx := practice.BuildContext(user, &session, sessionWords, s.memoryService.Recall(ctx, userId, memoryRecallQuery))

	result, err := s.runner.RunTurn(ctx, &evaluator.TurnRequest{
		SessionKey: session.Id.String(),
		Persona:    evaluator.PersonaTutor,
		Input:      "I just started a practice session. Greet me and introduce the first word.",
		Context:    pctx,
	})
	if err != nil {
		return nil, fmt.Errorf("greeting turn: %w", err)
	}

	return &dto.StartSessionResponse{
		SessionId:   session.Id,
		StartedAt:   session.StartedAt,
		WordsTotal:  len(sessionWords),
		CurrentWord: wordInfoToResponse(pctx.CurrentWord),
		Greeting:    result.FinalOutput,
	}, nil
}

func (s *practiceService) SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, session, err := s.loadOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session.IsClosed() {
		return nil, ErrSessionComplete
	}

	sessionWords, err := uow.SessionWordRepository().FindAllBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	pctx := practice.BuildContext(user, session, sessionWords, s.memoryService.Recall(ctx, userId, memoryRecallQuery))
	if pctx.CurrentWord == nil {
		return nil, ErrNoActiveWord
	}

	result, err := s.runner.RunTurn(ctx, &evaluator.TurnRequest{
		SessionKey: sessionId.String(),
		Persona:    evaluator.PersonaTutor,
		Input:      req.Message,
		Context:    pctx,
	})
	if err != nil {
		return nil, fmt.Errorf("tutor turn: %w", err)
	}

	resp := &dto.SendMessageResponse{
		Reply:           result.FinalOutput,
		CurrentWord:     wordInfoToResponse(pctx.CurrentWord),
		WordsPracticed:  pctx.WordsPracticed,
		WordsSkipped:    pctx.WordsSkipped,
		WordsTotal:      pctx.WordsTotal,
		SessionComplete: pctx.SessionComplete,
	}

	// A scored sentence attempt gets appended to the ledger. Everything
	// else was just conversation.
	fb := evaluator.ExtractFeedback(result)
	if fb != nil {
		attempts := uow.AttemptRepository()
		count, err := attempts.CountByWordAndSession(ctx, pctx.CurrentWord.WordId, sessionId)
		if err != nil {
			return nil, err
		}

		attempt := entity.Attempt{
			Id:               uuid.New(),
			WordId:           pctx.CurrentWord.WordId,
			SessionId:        sessionId,
			AttemptNumber:    int(count) + 1,
			Sentence:         req.Message,
			GrammarScore:     fb.GrammarScore,
			UsageScore:       fb.UsageScore,
			NaturalnessScore: fb.NaturalnessScore,
			IsCorrect:        fb.IsCorrect,
			FeedbackText:     fb.Feedback,
			Corrections:      fb.Corrections,
			Explanations:     fb.Explanations,
			ExampleSentences: fb.ExampleSentences,
			CreatedAt:        time.Now(),
		}
		if err := attempts.Create(ctx, &attempt); err != nil {
			return nil, err
		}

		resp.AttemptNumber = attempt.AttemptNumber
		resp.Feedback = &dto.FeedbackResponse{
			GrammarScore:     fb.GrammarScore,
			UsageScore:       fb.UsageScore,
			NaturalnessScore: fb.NaturalnessScore,
			IsCorrect:        fb.IsCorrect,
			Feedback:         fb.Feedback,
			Corrections:      fb.Corrections,
			Explanations:     fb.Explanations,
			ExampleSentences: fb.ExampleSentences,
		}
	}

	return resp, nil
}

func (s *practiceService) AdvanceWord(ctx context.Context, userId, sessionId uuid.UUID) (*dto.AdvanceWordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, session, err := s.loadOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session.IsClosed() {
		return nil, ErrSessionComplete
	}

	sessionWords, err := uow.SessionWordRepository().FindAllBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	current := practice.CurrentWord(sessionWords)
	if current == nil {
		return nil, ErrNoActiveWord
	}

	attempts, err := uow.AttemptRepository().FindAllByWordAndSession(ctx, current.WordId, sessionId)
	if err != nil {
		return nil, err
	}

	result, err := s.advanceCurrent(ctx, uow, current, attempts)
	if err != nil {
		return nil, err
	}

	// Re-read the roster so tallies reflect the transition just applied.
	sessionWords, err = uow.SessionWordRepository().FindAllBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	tally := practice.CountStatuses(sessionWords)
	next := practice.CurrentWord(sessionWords)
	complete := practice.IsComplete(sessionWords)

	reply := ""
	if complete {
		// The last word was advanced; finalise without requiring an
		// explicit completion call.
		if _, err := s.finalizeSession(ctx, uow, user, session, sessionWords); err != nil {
			s.log.Warn("practice", "Auto-completion failed", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	} else {
		turn, err := s.runner.RunTurn(ctx, &evaluator.TurnRequest{
			SessionKey: sessionId.String(),
			Persona:    evaluator.PersonaTutor,
			Input:      nextWordInstruction(next),
			Context:    practice.BuildContext(user, session, sessionWords, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("next word turn: %w", err)
		}
		reply = turn.FinalOutput
	}

	return &dto.AdvanceWordResponse{
		Reply:           reply,
		AdvancedWord:    result,
		CurrentWord:     sessionWordToResponse(next),
		WordsPracticed:  tally.Practiced,
		WordsSkipped:    tally.Skipped,
		WordsTotal:      tally.Total,
		SessionComplete: complete,
	}, nil
}

func nextWordInstruction(next *entity.SessionWord) string {
	if next == nil || next.Word == nil {
		return "The student has moved to the next word. Introduce it."
	}
	return fmt.Sprintf("The student has moved to the next word. Introduce it: %s (%s) - %s",
		next.Word.Word, next.Word.Pinyin, next.Word.Meaning)
}

// advanceCurrent applies the advance rule: words with attempts are completed
// with averaged scores and a confidence update, words without attempts are
// skipped and their confidence is left untouched.
func (s *practiceService) advanceCurrent(ctx context.Context, uow unitofwork.UnitOfWork, current *entity.SessionWord, attempts []*entity.Attempt) (*dto.WordResultResponse, error) {
	words := uow.WordRepository()

	word, err := words.FindOne(ctx, specification.ByID{ID: current.WordId})
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}

	result := &dto.WordResultResponse{
		WordId:   word.Id,
		Word:     word.Word,
		Attempts: len(attempts),
	}

	if len(attempts) == 0 {
		transitioned, err := uow.SessionWordRepository().SkipWord(ctx, current.WordId, current.SessionId)
		if err != nil {
			return nil, err
		}
		if !transitioned {
			return nil, ErrWordAlreadyAdvanced
		}
		result.Skipped = true
		result.ConfidenceScore = word.ConfidenceScore
		result.Status = word.Status()
		return result, nil
	}

	avgGrammar, avgUsage, avgNaturalness := practice.Averages(attempts)
	isCorrect := confidence.IsCorrect(avgGrammar, avgUsage)

	transitioned, err := uow.SessionWordRepository().CompleteWord(ctx, current.WordId, current.SessionId, contract.WordScores{
		Grammar:     avgGrammar,
		Usage:       avgUsage,
		Naturalness: avgNaturalness,
		IsCorrect:   isCorrect,
	})
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return nil, ErrWordAlreadyAdvanced
	}

	newScore := confidence.Update(word.ConfidenceScore, avgGrammar, avgUsage, avgNaturalness, isCorrect)
	if err := words.UpdateConfidence(ctx, word.Id, newScore); err != nil {
		return nil, err
	}

	if newScore >= confidence.MasteryThreshold && word.ConfidenceScore < confidence.MasteryThreshold {
		s.publishEvent(ctx, "WORD_MASTERED", map[string]interface{}{
			"word_id": word.Id,
			"word":    word.Word,
			"user_id": word.UserId,
			"score":   newScore,
		})
	}

	result.GrammarScore = &avgGrammar
	result.UsageScore = &avgUsage
	result.NaturalnessScore = &avgNaturalness
	result.IsCorrect = &isCorrect
	result.ConfidenceScore = newScore
	result.Status = confidence.StatusFor(newScore)
	return result, nil
}

func (s *practiceService) CompleteSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.CompleteSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, session, err := s.loadOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	sessionWords, err := uow.SessionWordRepository().FindAllBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	if session.IsClosed() {
		// Idempotent: completing twice returns the stored result.
		return s.completionResponse(ctx, uow, session, sessionWords)
	}

	summary, err := s.finalizeSession(ctx, uow, user, session, sessionWords)
	if err != nil {
		return nil, err
	}
	session.SummaryText = &summary

	return s.completionResponse(ctx, uow, session, sessionWords)
}

// finalizeSession generates the summary, persists learner observations, and
// closes the session. A summariser failure never blocks closing: the learner
// still gets a canned sign-off.
func (s *practiceService) finalizeSession(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, session *entity.PracticeSession, sessionWords []*entity.SessionWord) (string, error) {
	pctx := practice.BuildContext(user, session, sessionWords, "")

	summaryText := fallbackSummary
	var memoryUpdates []string

	result, err := s.runner.RunTurn(ctx, &evaluator.TurnRequest{
		SessionKey: session.Id.String(),
		Persona:    evaluator.PersonaSummarizer,
		Input:      "The session is over. Write the session summary.",
		Context:    pctx,
	})
	if err != nil {
		s.log.Warn("practice", "Summary turn failed, using fallback", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	} else if summary := evaluator.ExtractSummary(result); summary != nil {
		summaryText = summary.SummaryText
		memoryUpdates = summary.MemoryUpdates
	}

	if len(memoryUpdates) > 0 {
		s.memoryService.Add(ctx, session.UserId, memoryUpdates)
	}

	now := time.Now()
	closed, err := uow.PracticeSessionRepository().Close(ctx, session.Id, summaryText, now)
	if err != nil {
		return "", err
	}
	if !closed {
		return "", ErrSessionComplete
	}
	session.EndedAt = &now

	tally := practice.CountStatuses(sessionWords)
	s.publishEvent(ctx, "SESSION_COMPLETED", map[string]interface{}{
		"session_id":      session.Id,
		"user_id":         session.UserId,
		"words_practiced": tally.Practiced,
		"words_skipped":   tally.Skipped,
	})

	return summaryText, nil
}

func (s *practiceService) completionResponse(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.PracticeSession, sessionWords []*entity.SessionWord) (*dto.CompleteSessionResponse, error) {
	tally := practice.CountStatuses(sessionWords)

	results := make([]dto.WordResultResponse, 0, len(sessionWords))
	for _, sw := range sessionWords {
		count, err := uow.AttemptRepository().CountByWordAndSession(ctx, sw.WordId, session.Id)
		if err != nil {
			return nil, err
		}
		row := dto.WordResultResponse{
			WordId:           sw.WordId,
			Skipped:          sw.IsSkipped,
			Attempts:         int(count),
			GrammarScore:     sw.GrammarScore,
			UsageScore:       sw.UsageScore,
			NaturalnessScore: sw.NaturalnessScore,
			IsCorrect:        sw.IsCorrect,
		}
		// The word row may have been deleted since the session ran; keep
		// the result with the known id rather than dropping it.
		if sw.Word != nil {
			row.Word = sw.Word.Word
			row.ConfidenceScore = sw.Word.ConfidenceScore
			row.Status = sw.Word.Status()
		}
		results = append(results, row)
	}

	summaryText := ""
	if session.SummaryText != nil {
		summaryText = *session.SummaryText
	}
	endedAt := time.Now()
	if session.EndedAt != nil {
		endedAt = *session.EndedAt
	}

	return &dto.CompleteSessionResponse{
		SessionId:      session.Id,
		SummaryText:    summaryText,
		WordsPracticed: tally.Practiced,
		WordsSkipped:   tally.Skipped,
		WordsTotal:     tally.Total,
		WordResults:    results,
		EndedAt:        endedAt,
	}, nil
}

func (s *practiceService) GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, session, err := s.loadOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	sessionWords, err := uow.SessionWordRepository().FindAllBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	tally := practice.CountStatuses(sessionWords)
	summaryText := ""
	if session.SummaryText != nil {
		summaryText = *session.SummaryText
	}

	return &dto.SessionStateResponse{
		SessionId:       session.Id,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		CurrentWord:     sessionWordToResponse(practice.CurrentWord(sessionWords)),
		WordsPracticed:  tally.Practiced,
		WordsSkipped:    tally.Skipped,
		WordsTotal:      tally.Total,
		SessionComplete: session.IsClosed() || practice.IsComplete(sessionWords),
		SummaryText:     summaryText,
	}, nil
}

func (s *practiceService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.PracticeSessionRepository().FindAll(ctx,
		specification.SessionOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.SessionHistoryResponse, len(sessions))
	for i, session := range sessions {
		item := &dto.SessionHistoryResponse{
			SessionId:  session.Id,
			StartedAt:  session.StartedAt,
			EndedAt:    session.EndedAt,
			WordsTotal: session.WordsPerSession,
			Completed:  session.IsClosed(),
		}
		if session.SummaryText != nil {
			item.SummaryText = *session.SummaryText
		}
		history[i] = item
	}
	return history, nil
}

func (s *practiceService) loadOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.User, *entity.PracticeSession, error) {
	session, err := uow.PracticeSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.SessionOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	return user, session, nil
}

func (s *practiceService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Events feed the audit trail; losing one never fails the request.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("practice", "Failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func wordInfoToResponse(info *practice.WordInfo) *dto.SessionWordResponse {
	if info == nil {
		return nil
	}
	return &dto.SessionWordResponse{
		WordId:  info.WordId,
		Word:    info.Word,
		Pinyin:  info.Pinyin,
		Meaning: info.Meaning,
	}
}

func sessionWordToResponse(sw *entity.SessionWord) *dto.SessionWordResponse {
	if sw == nil || sw.Word == nil {
		return nil
	}
	return &dto.SessionWordResponse{
		WordId:  sw.WordId,
		Word:    sw.Word.Word,
		Pinyin:  sw.Word.Pinyin,
		Meaning: sw.Word.Meaning,
	}
}
