package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lectoquiz/internal/config"
	"lectoquiz/internal/domain"
	"lectoquiz/internal/dto"
)

func testConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{
			DefaultNumQuestions: 5,
			DefaultDifficulty:   "normal",
			MaxNumQuestions:     20,
		},
	}
}

func sampleQuestionSet() *domain.QuestionSet {
	return &domain.QuestionSet{
		ID:            "01HTESTSET0000000000000000",
		Theme:         "biology",
		LectureNumber: 3,
		Questions: []domain.Question{
			{
				QuestionID:    1,
				Type:          domain.QuestionTypeSingleChoice,
				QuestionText:  "Which organelle produces ATP?",
				Options:       []string{"A", "B", "C", "D"},
				CorrectAnswer: "B",
				Explanation:   "Mitochondria produce ATP.",
			},
			{
				QuestionID:      2,
				Type:            domain.QuestionTypeFreeText,
				QuestionText:    "What do mitochondria do?",
				CorrectAnswer:   "They produce energy.",
				Explanation:     "Energy production.",
				ScoringKeywords: []string{"mitochondria", "energy"},
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

const modelOutput = `Here is the quiz you asked for:
{"qa_set": [{"question_id": 1, "type": "single_choice", "question_text": "Which organelle produces ATP?", "options": ["A", "B", "C", "D"], "correct_answer": "B", "explanation": "Mitochondria produce ATP."}]}
Enjoy!`

func TestGenerateFromText(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	gen := new(MockTextGenerator)
	cacheMock := new(MockCache)
	svc := NewQASetService(repo, gen, cacheMock, testConfig())

	// Defaults from config are applied when the request omits tuning fields.
	gen.On("GenerateQASetText", mock.Anything, "lecture text here", 5, "normal").
		Return(modelOutput, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(set *domain.QuestionSet) bool {
		return set.Theme == "biology" && len(set.Questions) == 1
	})).Return(nil)

	resp, err := svc.GenerateFromText(context.Background(), &dto.GenerateRequest{
		LectureText:   "lecture text here",
		Theme:         "biology",
		LectureNumber: 3,
	})

	require.NoError(t, err)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "Which organelle produces ATP?", resp.Questions[0].QuestionText)
	assert.Equal(t, "biology", resp.Theme)
	repo.AssertExpectations(t)
	gen.AssertExpectations(t)
}

func TestGenerateFromText_LLMFailure(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	gen := new(MockTextGenerator)
	svc := NewQASetService(repo, gen, nil, testConfig())

	gen.On("GenerateQASetText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	_, err := svc.GenerateFromText(context.Background(), &dto.GenerateRequest{
		LectureText: "text", Theme: "biology",
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGenerateFromText_ExtractionFailure(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantCode domain.ErrorCode
	}{
		{"no JSON at all", "I could not produce a quiz, sorry.", domain.CodeNoJSONFound},
		{"truncated document", `{"qa_set": [{"question_id": 1`, domain.CodeNoJSONFound},
		{"wrong top-level key", `{"questions": []}`, domain.CodeMissingQASet},
		{"garbage inside braces", `{not json}`, domain.CodeMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockQuestionSetRepository)
			gen := new(MockTextGenerator)
			svc := NewQASetService(repo, gen, nil, testConfig())

			gen.On("GenerateQASetText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.output, nil)

			_, err := svc.GenerateFromText(context.Background(), &dto.GenerateRequest{
				LectureText: "text", Theme: "biology",
			})

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestGetQASet_CacheMiss(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	cacheMock := new(MockCache)
	svc := NewQASetService(repo, nil, cacheMock, testConfig())

	set := sampleQuestionSet()
	cacheKey := "lectoquiz:qaset_service:qaset:" + set.ID

	cacheMock.On("Get", mock.Anything, cacheKey).Return("", domain.ErrCacheMiss)
	repo.On("GetByID", mock.Anything, set.ID).Return(set, nil)
	cacheMock.On("Set", mock.Anything, cacheKey, mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.GetQASet(context.Background(), set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.ID, resp.ID)
	assert.Len(t, resp.Questions, 2)
	cacheMock.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestGetQASet_CacheHit(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	cacheMock := new(MockCache)
	svc := NewQASetService(repo, nil, cacheMock, testConfig())

	set := sampleQuestionSet()
	cached := dto.NewQASetResponse(set)
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	cacheKey := "lectoquiz:qaset_service:qaset:" + set.ID
	cacheMock.On("Get", mock.Anything, cacheKey).Return(string(payload), nil)

	resp, err := svc.GetQASet(context.Background(), set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.ID, resp.ID)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetQASet_NotFound(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	svc := NewQASetService(repo, nil, nil, testConfig())

	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetQASet(context.Background(), "missing")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQASetNotFound, domainErr.Code)
}

func TestListQASets(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	svc := NewQASetService(repo, nil, nil, testConfig())

	sets := []*domain.QuestionSet{sampleQuestionSet()}
	repo.On("List", mock.Anything, "biology", 3).Return(sets, nil)

	summaries, err := svc.ListQASets(context.Background(), "biology", 3)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, sets[0].ID, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].QuestionCount)
}

func TestDeleteQASet(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	cacheMock := new(MockCache)
	svc := NewQASetService(repo, nil, cacheMock, testConfig())

	set := sampleQuestionSet()
	repo.On("GetByID", mock.Anything, set.ID).Return(set, nil)
	repo.On("Delete", mock.Anything, set.ID).Return(nil)
	cacheMock.On("Delete", mock.Anything, "lectoquiz:qaset_service:qaset:"+set.ID).Return(nil)

	err := svc.DeleteQASet(context.Background(), set.ID)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestDeleteQASet_NotFound(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	svc := NewQASetService(repo, nil, nil, testConfig())

	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	err := svc.DeleteQASet(context.Background(), "missing")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQASetNotFound, domainErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSubmitAnswers(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	cacheMock := new(MockCache)
	svc := NewQASetService(repo, nil, cacheMock, testConfig())

	set := sampleQuestionSet()
	repo.On("GetByID", mock.Anything, set.ID).Return(set, nil)
	repo.On("AppendSubmission", mock.Anything, set.ID, mock.MatchedBy(func(r *domain.ScoreReport) bool {
		return r.CorrectCount == 2 && r.TotalCount == 2 && r.Score == 100.0
	})).Return(nil)
	cacheMock.On("Delete", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.SubmitAnswers(context.Background(), set.ID, &dto.SubmitRequest{
		Answers: []domain.SubmittedAnswer{
			{QuestionID: 1, Answer: "B"},
			{QuestionID: 2, Answer: "The mitochondria produce the cell's energy."},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Score)
	assert.NotEmpty(t, resp.SubmissionID)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].IsCorrect)
	repo.AssertExpectations(t)
}

func TestSubmitAnswers_CountMismatch(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	svc := NewQASetService(repo, nil, nil, testConfig())

	set := sampleQuestionSet()
	repo.On("GetByID", mock.Anything, set.ID).Return(set, nil)

	_, err := svc.SubmitAnswers(context.Background(), set.ID, &dto.SubmitRequest{
		Answers: []domain.SubmittedAnswer{{QuestionID: 1, Answer: "B"}},
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAnswerCountMismatch, domainErr.Code)
	assert.Equal(t, 2, domainErr.Context["questions"])
	assert.Equal(t, 1, domainErr.Context["answers"])
	repo.AssertNotCalled(t, "AppendSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswers_NotFound(t *testing.T) {
	repo := new(MockQuestionSetRepository)
	svc := NewQASetService(repo, nil, nil, testConfig())

	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.SubmitAnswers(context.Background(), "missing", &dto.SubmitRequest{
		Answers: []domain.SubmittedAnswer{{QuestionID: 1, Answer: "B"}},
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQASetNotFound, domainErr.Code)
}
