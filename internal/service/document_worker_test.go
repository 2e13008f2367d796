package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lectoquiz/internal/dto"
)

// Manual function-field mocks keep the worker tests independent of the
// concrete service implementations.
type stubUploadService struct {
	PendingUploadFunc func(ctx context.Context, objectKey string) (*dto.UploadRequest, error)
}

func (s *stubUploadService) IssueUploadURL(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResponse, error) {
	panic("not implemented in stub")
}

func (s *stubUploadService) PendingUpload(ctx context.Context, objectKey string) (*dto.UploadRequest, error) {
	return s.PendingUploadFunc(ctx, objectKey)
}

type stubQASetService struct {
	GenerateFromTextFunc func(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error)
}

func (s *stubQASetService) GenerateFromText(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error) {
	return s.GenerateFromTextFunc(ctx, req)
}

func (s *stubQASetService) GetQASet(ctx context.Context, id string) (*dto.QASetResponse, error) {
	panic("not implemented in stub")
}

func (s *stubQASetService) ListQASets(ctx context.Context, theme string, lectureNumber int) ([]dto.QASetSummary, error) {
	panic("not implemented in stub")
}

func (s *stubQASetService) DeleteQASet(ctx context.Context, id string) error {
	panic("not implemented in stub")
}

func (s *stubQASetService) SubmitAnswers(ctx context.Context, id string, req *dto.SubmitRequest) (*dto.ScoreReportResponse, error) {
	panic("not implemented in stub")
}

func TestDocumentWorker_HandleMessage(t *testing.T) {
	var generated *dto.GenerateRequest

	uploads := &stubUploadService{
		PendingUploadFunc: func(ctx context.Context, objectKey string) (*dto.UploadRequest, error) {
			require.Equal(t, "uploads/01HKEY-notes.pdf", objectKey)
			return &dto.UploadRequest{
				FileName:      "notes.pdf",
				Theme:         "physics",
				LectureNumber: 12,
				NumQuestions:  8,
				Difficulty:    "easy",
			}, nil
		},
	}
	qaSets := &stubQASetService{
		GenerateFromTextFunc: func(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error) {
			generated = req
			return &dto.QASetResponse{ID: "01HNEWSET"}, nil
		},
	}

	worker := NewDocumentWorker(nil, "lectoquiz:documents:extracted", uploads, qaSets)
	worker.handleMessage(context.Background(),
		`{"object_key": "uploads/01HKEY-notes.pdf", "text": "Newton's laws describe motion."}`)

	require.NotNil(t, generated)
	assert.Equal(t, "Newton's laws describe motion.", generated.LectureText)
	assert.Equal(t, "physics", generated.Theme)
	assert.Equal(t, 12, generated.LectureNumber)
	assert.Equal(t, 8, generated.NumQuestions)
	assert.Equal(t, "easy", generated.Difficulty)
	assert.Equal(t, "notes.pdf", generated.SourceFile)
}

func TestDocumentWorker_HandleMessage_Dropped(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		pending func(ctx context.Context, objectKey string) (*dto.UploadRequest, error)
	}{
		{"malformed payload", `not json`, nil},
		{"missing object key", `{"text": "some text"}`, nil},
		{"missing text", `{"object_key": "uploads/x.pdf"}`, nil},
		{"no parked metadata", `{"object_key": "uploads/x.pdf", "text": "some text"}`,
			func(ctx context.Context, objectKey string) (*dto.UploadRequest, error) {
				return nil, nil
			}},
		{"metadata lookup failure", `{"object_key": "uploads/x.pdf", "text": "some text"}`,
			func(ctx context.Context, objectKey string) (*dto.UploadRequest, error) {
				return nil, errors.New("redis down")
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			qaSets := &stubQASetService{
				GenerateFromTextFunc: func(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error) {
					called = true
					return nil, nil
				},
			}
			uploads := &stubUploadService{PendingUploadFunc: tt.pending}

			worker := NewDocumentWorker(nil, "ch", uploads, qaSets)
			worker.handleMessage(context.Background(), tt.payload)

			assert.False(t, called, "generation must not run for dropped events")
		})
	}
}

func TestDocumentWorker_HandleMessage_GenerationFailure(t *testing.T) {
	uploads := &stubUploadService{
		PendingUploadFunc: func(ctx context.Context, objectKey string) (*dto.UploadRequest, error) {
			return &dto.UploadRequest{FileName: "a.pdf", Theme: "x"}, nil
		},
	}
	qaSets := &stubQASetService{
		GenerateFromTextFunc: func(ctx context.Context, req *dto.GenerateRequest) (*dto.QASetResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}

	worker := NewDocumentWorker(nil, "ch", uploads, qaSets)

	// A failed generation is logged and dropped without panicking.
	assert.NotPanics(t, func() {
		worker.handleMessage(context.Background(),
			`{"object_key": "uploads/x.pdf", "text": "some text"}`)
	})
}
