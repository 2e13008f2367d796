package domain

import (
	"context"
)

// QuestionSetRepository defines the interface for QA set persistence.
type QuestionSetRepository interface {
	// Save persists a newly generated question set.
	Save(ctx context.Context, set *QuestionSet) error

	// GetByID retrieves a question set with its submission history.
	// It returns (nil, nil) when no set exists for the given id.
	GetByID(ctx context.Context, id string) (*QuestionSet, error)

	// List returns sets filtered by theme; lectureNumber <= 0 disables the
	// lecture filter. An empty theme returns all sets.
	List(ctx context.Context, theme string, lectureNumber int) ([]*QuestionSet, error)

	// Delete removes a question set and its submission history.
	Delete(ctx context.Context, id string) error

	// AppendSubmission appends a score report to the set's history.
	// The append must be atomic: concurrent submissions against the same
	// set must not lose reports.
	AppendSubmission(ctx context.Context, qaSetID string, report *ScoreReport) error
}

// TextGenerator defines the interface for the generative text service.
// It returns the raw completion text; callers are responsible for locating
// and parsing the embedded QA document.
type TextGenerator interface {
	GenerateQASetText(ctx context.Context, lectureText string, numQuestions int, difficulty string) (string, error)
}

// UploadURLIssuer issues a scoped, expiring upload credential for a lecture
// document object key.
type UploadURLIssuer interface {
	IssueUploadURL(ctx context.Context, objectKey string) (string, error)
}
