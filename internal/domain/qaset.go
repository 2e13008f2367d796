package domain

import (
	"fmt"
	"time"
)

// Question types as emitted by the generation prompt.
const (
	QuestionTypeSingleChoice = "single_choice"
	QuestionTypeFreeText     = "free_text"
)

// Question is one quiz item inside a QuestionSet. The JSON tags match the
// document shape the model is instructed to emit.
type Question struct {
	QuestionID      int      `json:"question_id"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty,omitempty"`
	QuestionText    string   `json:"question_text"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correct_answer"`
	Explanation     string   `json:"explanation"`
	ScoringKeywords []string `json:"scoring_keywords,omitempty"`
}

// Validate checks the structural invariants of a question.
// A single_choice question must carry options to choose from.
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return NewInvalidInputError(fmt.Sprintf("question %d: question_text is required", q.QuestionID))
	}
	switch q.Type {
	case QuestionTypeSingleChoice:
		if len(q.Options) == 0 {
			return NewInvalidInputError(fmt.Sprintf("question %d: single_choice requires options", q.QuestionID))
		}
	case QuestionTypeFreeText:
		// scoring_keywords may legitimately be empty; grading treats that as
		// always-incorrect rather than falling back to a full-text match.
	default:
		return NewInvalidInputError(fmt.Sprintf("question %d: unknown type %q", q.QuestionID, q.Type))
	}
	return nil
}

// QuestionSet is an ordered, immutable collection of questions produced by
// one generation request. Only the submission history may grow afterwards.
type QuestionSet struct {
	ID            string
	Theme         string
	LectureNumber int
	SourceFile    string
	SourceHead    string
	Questions     []Question
	Submissions   []ScoreReport
	CreatedAt     time.Time
}

// Validate validates every question in the set.
func (s *QuestionSet) Validate() error {
	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SubmittedAnswer is one entry of a learner submission, aligned positionally
// with the set's questions.
type SubmittedAnswer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
	IsFlagged  bool   `json:"is_flagged"`
}

// QuestionResult is the per-question grading outcome.
type QuestionResult struct {
	QuestionID int  `json:"question_id"`
	IsCorrect  bool `json:"is_correct"`
	IsFlagged  bool `json:"is_flagged"`
}

// ScoreReport is the computed outcome of grading one submission. Reports are
// append-only: once written to a set's history they are never mutated.
type ScoreReport struct {
	SubmissionID string           `json:"submission_id"`
	Score        float64          `json:"score"`
	CorrectCount int              `json:"correct_count"`
	TotalCount   int              `json:"total_count"`
	Results      []QuestionResult `json:"results"`
	SubmittedAt  time.Time        `json:"submitted_at"`
}
