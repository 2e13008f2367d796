package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lectoquiz/internal/cache"
	"lectoquiz/internal/config"
	"lectoquiz/internal/domain"
	"lectoquiz/internal/dto"
	"lectoquiz/internal/extract"
	"lectoquiz/internal/grading"
	"lectoquiz/internal/logger"

	"go.uber.org/zap"
)

const (
	// sourceHeadLen is how much of the lecture text is kept on the set as a
	// human-readable provenance snippet.
	sourceHeadLen = 200

	qaSetCacheTTL = 10 * time.Minute
)

// QASetService defines the interface for question set operations.
type QASetService interface {
	GenerateFromText(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error)
	GetQASet(ctx context.Context, id string) (*dto.QASetResponse, error)
	ListQASets(ctx context.Context, theme string, lectureNumber int) ([]dto.QASetSummary, error)
	DeleteQASet(ctx context.Context, id string) error
	SubmitAnswers(ctx context.Context, id string, req *dto.SubmitRequest) (*dto.ScoreReportResponse, error)
}

type qaSetService struct {
	repo      domain.QuestionSetRepository
	generator domain.TextGenerator
	cache     domain.Cache
	cfg       *config.Config
}

// NewQASetService creates a new instance of qaSetService.
func NewQASetService(
	repo domain.QuestionSetRepository,
	generator domain.TextGenerator,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) QASetService {
	return &qaSetService{
		repo:      repo,
		generator: generator,
		cache:     cacheAdapter,
		cfg:       cfg,
	}
}

// GenerateFromText implements QASetService. It runs the full generation
// pipeline: prompt the model, extract the embedded QA document, validate the
// questions, and persist the resulting set.
func (s *qaSetService) GenerateFromText(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error) {
	numQuestions := req.NumQuestions
	if numQuestions == 0 {
		numQuestions = s.cfg.Generation.DefaultNumQuestions
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = s.cfg.Generation.DefaultDifficulty
	}

	rawText, err := s.generator.GenerateQASetText(ctx, req.LectureText, numQuestions, difficulty)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	questions, err := extract.Extract(rawText)
	if err != nil {
		var extractErr *extract.Error
		if errors.As(err, &extractErr) {
			logger.Get().Warn("Failed to extract QA document from model output",
				zap.String("kind", extractErr.Kind.String()),
				zap.Int("raw_chars", len(rawText)),
				zap.Error(err))
			return nil, domain.NewError(extractErr.DomainCode(), "Model output did not contain a usable QA document", err)
		}
		return nil, domain.NewInternalError("Failed to extract QA document", err)
	}

	set := &domain.QuestionSet{
		Theme:         req.Theme,
		LectureNumber: req.LectureNumber,
		SourceFile:    req.SourceFile,
		SourceHead:    headOf(req.LectureText, sourceHeadLen),
		Questions:     questions,
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, set); err != nil {
		return nil, domain.NewInternalError("Failed to save question set", err)
	}

	logger.Get().Info("Generated question set",
		zap.String("qa_set_id", set.ID),
		zap.String("theme", set.Theme),
		zap.Int("lecture_number", set.LectureNumber),
		zap.Int("questions", len(set.Questions)))

	resp := dto.NewQASetResponse(set)
	return &resp, nil
}

// GetQASet implements QASetService with a cache-aside read.
func (s *qaSetService) GetQASet(ctx context.Context, id string) (*dto.QASetResponse, error) {
	cacheKey := cache.GenerateCacheKey("qaset_service", "qaset", id)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var resp dto.QASetResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &resp); unmarshalErr == nil {
				return &resp, nil
			}
			// Poisoned entry: drop it and fall through to the repository.
			_ = s.cache.Delete(ctx, cacheKey)
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Cache read failed, falling back to repository",
				zap.String("key", cacheKey), zap.Error(err))
		}
	}

	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question set", err)
	}
	if set == nil {
		return nil, domain.NewQASetNotFoundError(id)
	}

	resp := dto.NewQASetResponse(set)

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			if setErr := s.cache.Set(ctx, cacheKey, string(payload), qaSetCacheTTL); setErr != nil {
				logger.Get().Warn("Cache write failed", zap.String("key", cacheKey), zap.Error(setErr))
			}
		}
	}

	return &resp, nil
}

// ListQASets implements QASetService.
func (s *qaSetService) ListQASets(ctx context.Context, theme string, lectureNumber int) ([]dto.QASetSummary, error) {
	sets, err := s.repo.List(ctx, theme, lectureNumber)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list question sets", err)
	}

	summaries := make([]dto.QASetSummary, 0, len(sets))
	for _, set := range sets {
		summaries = append(summaries, dto.NewQASetSummary(set))
	}
	return summaries, nil
}

// DeleteQASet implements QASetService.
func (s *qaSetService) DeleteQASet(ctx context.Context, id string) error {
	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to get question set", err)
	}
	if set == nil {
		return domain.NewQASetNotFoundError(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.NewInternalError("Failed to delete question set", err)
	}

	s.invalidate(ctx, id)
	logger.Get().Info("Deleted question set", zap.String("qa_set_id", id))
	return nil
}

// SubmitAnswers implements QASetService. The graded report is appended to the
// set's history before it is returned.
func (s *qaSetService) SubmitAnswers(ctx context.Context, id string, req *dto.SubmitRequest) (*dto.ScoreReportResponse, error) {
	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question set", err)
	}
	if set == nil {
		return nil, domain.NewQASetNotFoundError(id)
	}

	report, err := grading.Grade(set, req.Answers)
	if err != nil {
		var mismatch *grading.ErrAnswerCountMismatch
		if errors.As(err, &mismatch) {
			return nil, &domain.DomainError{
				Code:    domain.CodeAnswerCountMismatch,
				Message: err.Error(),
				Context: map[string]interface{}{
					"questions": mismatch.Questions,
					"answers":   mismatch.Answers,
				},
			}
		}
		return nil, domain.NewInternalError("Failed to grade submission", err)
	}

	if err := s.repo.AppendSubmission(ctx, id, report); err != nil {
		return nil, domain.NewInternalError("Failed to record submission", err)
	}

	s.invalidate(ctx, id)
	logger.Get().Info("Graded submission",
		zap.String("qa_set_id", id),
		zap.String("submission_id", report.SubmissionID),
		zap.Float64("score", report.Score))

	resp := dto.NewScoreReportResponse(report)
	return &resp, nil
}

func (s *qaSetService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	cacheKey := cache.GenerateCacheKey("qaset_service", "qaset", id)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Get().Warn("Cache invalidation failed", zap.String("key", cacheKey), zap.Error(err))
	}
}

func headOf(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
