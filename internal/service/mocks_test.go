package service

import (
	"context"
	"time"

	"lectoquiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionSetRepository ---
type MockQuestionSetRepository struct {
	mock.Mock
}

func (m *MockQuestionSetRepository) Save(ctx context.Context, set *domain.QuestionSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockQuestionSetRepository) GetByID(ctx context.Context, id string) (*domain.QuestionSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionSet), args.Error(1)
}

func (m *MockQuestionSetRepository) List(ctx context.Context, theme string, lectureNumber int) ([]*domain.QuestionSet, error) {
	args := m.Called(ctx, theme, lectureNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionSet), args.Error(1)
}

func (m *MockQuestionSetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionSetRepository) AppendSubmission(ctx context.Context, qaSetID string, report *domain.ScoreReport) error {
	args := m.Called(ctx, qaSetID, report)
	return args.Error(0)
}

// --- MockTextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateQASetText(ctx context.Context, lectureText string, numQuestions int, difficulty string) (string, error) {
	args := m.Called(ctx, lectureText, numQuestions, difficulty)
	return args.String(0), args.Error(1)
}

// --- MockUploadURLIssuer ---
type MockUploadURLIssuer struct {
	mock.Mock
}

func (m *MockUploadURLIssuer) IssueUploadURL(ctx context.Context, objectKey string) (string, error) {
	args := m.Called(ctx, objectKey)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) HGet(ctx context.Context, key, field string) (string, error) {
	args := m.Called(ctx, key, field)
	return args.String(0), args.Error(1)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) HSet(ctx context.Context, key string, field string, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}
