package service

import (
	"context"
	"encoding/json"

	"lectoquiz/internal/dto"
	"lectoquiz/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ExtractedDocumentEvent is published on the document event channel once the
// text-extraction pipeline has finished with an uploaded lecture document.
type ExtractedDocumentEvent struct {
	ObjectKey string `json:"object_key"`
	Text      string `json:"text"`
}

// DocumentWorker consumes extraction events and runs QA generation for each
// one, using the parameters parked when the upload URL was issued. Failures
// are logged and the event dropped; the upload flow is best-effort and the
// client can always fall back to the synchronous generate endpoint.
type DocumentWorker struct {
	redisClient *redis.Client
	channel     string
	uploads     UploadService
	qaSets      QASetService
}

// NewDocumentWorker creates a new DocumentWorker.
func NewDocumentWorker(redisClient *redis.Client, channel string, uploads UploadService, qaSets QASetService) *DocumentWorker {
	return &DocumentWorker{
		redisClient: redisClient,
		channel:     channel,
		uploads:     uploads,
		qaSets:      qaSets,
	}
}

// Run subscribes to the event channel and processes messages until ctx is
// cancelled.
func (w *DocumentWorker) Run(ctx context.Context) error {
	sub := w.redisClient.Subscribe(ctx, w.channel)
	defer sub.Close()

	// Fail fast if the subscription could not be established.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	l := logger.Get()
	l.Info("Document worker started", zap.String("channel", w.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			l.Info("Document worker stopping")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				l.Warn("Document event channel closed")
				return nil
			}
			w.handleMessage(ctx, msg.Payload)
		}
	}
}

func (w *DocumentWorker) handleMessage(ctx context.Context, payload string) {
	l := logger.Get()

	var event ExtractedDocumentEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		l.Error("Dropping malformed document event", zap.Error(err))
		return
	}
	if event.ObjectKey == "" || event.Text == "" {
		l.Warn("Dropping incomplete document event", zap.String("object_key", event.ObjectKey))
		return
	}

	pending, err := w.uploads.PendingUpload(ctx, event.ObjectKey)
	if err != nil {
		l.Error("Failed to load parked upload metadata",
			zap.String("object_key", event.ObjectKey), zap.Error(err))
		return
	}
	if pending == nil {
		l.Warn("No parked metadata for extracted document, skipping",
			zap.String("object_key", event.ObjectKey))
		return
	}

	req := &dto.GenerateRequest{
		LectureText:   event.Text,
		Theme:         pending.Theme,
		LectureNumber: pending.LectureNumber,
		NumQuestions:  pending.NumQuestions,
		Difficulty:    pending.Difficulty,
		SourceFile:    pending.FileName,
	}

	resp, err := w.qaSets.GenerateFromText(ctx, req)
	if err != nil {
		l.Error("QA generation for uploaded document failed",
			zap.String("object_key", event.ObjectKey),
			zap.String("theme", pending.Theme),
			zap.Error(err))
		return
	}

	l.Info("Generated question set from uploaded document",
		zap.String("object_key", event.ObjectKey),
		zap.String("qa_set_id", resp.ID),
		zap.Int("questions", len(resp.Questions)))
}
