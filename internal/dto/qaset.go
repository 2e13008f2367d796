// Package dto defines the request and response shapes of the HTTP API.
// Handlers translate between these types and the domain model so that wire
// compatibility never leaks into business logic.
package dto

import (
	"time"

	"lectoquiz/internal/domain"
)

// GenerateRequest asks for a new question set from raw lecture text.
type GenerateRequest struct {
	LectureText   string `json:"lecture_text"`
	Theme         string `json:"theme"`
	LectureNumber int    `json:"lecture_number"`
	NumQuestions  int    `json:"num_questions"`
	Difficulty    string `json:"difficulty"`
	SourceFile    string `json:"source_file,omitempty"`
}

// UploadRequest asks for a presigned URL to upload a lecture document.
// The generation parameters are parked alongside the upload so the
// background worker can pick them up once text extraction completes.
type UploadRequest struct {
	FileName      string `json:"file_name"`
	Theme         string `json:"theme"`
	LectureNumber int    `json:"lecture_number"`
	NumQuestions  int    `json:"num_questions"`
	Difficulty    string `json:"difficulty"`
}

// UploadResponse carries the presigned URL the client must PUT the file to.
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int    `json:"expires_in"`
}

// QASetSummary is the list-view projection of a question set.
type QASetSummary struct {
	ID            string    `json:"id"`
	Theme         string    `json:"theme"`
	LectureNumber int       `json:"lecture_number"`
	SourceFile    string    `json:"source_file,omitempty"`
	SourceHead    string    `json:"source_head,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QASetResponse is the full question set including questions and any
// recorded submissions.
type QASetResponse struct {
	ID            string                `json:"id"`
	Theme         string                `json:"theme"`
	LectureNumber int                   `json:"lecture_number"`
	SourceFile    string                `json:"source_file,omitempty"`
	SourceHead    string                `json:"source_head,omitempty"`
	Questions     []domain.Question     `json:"qa_set"`
	Submissions   []ScoreReportResponse `json:"submissions,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// SubmitRequest carries a learner's answers, aligned by position with the
// stored question list.
type SubmitRequest struct {
	Answers []domain.SubmittedAnswer `json:"answers"`
}

// ScoreReportResponse is the graded outcome of one submission.
type ScoreReportResponse struct {
	SubmissionID string                  `json:"submission_id"`
	Score        float64                 `json:"score"`
	CorrectCount int                     `json:"correct_count"`
	TotalCount   int                     `json:"total_count"`
	Results      []domain.QuestionResult `json:"results"`
	SubmittedAt  time.Time               `json:"submitted_at"`
}

// ErrorResponse is the uniform error body produced by the error middleware.
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []domain.ValidationError `json:"details,omitempty"`
}

// NewQASetSummary projects a domain question set for list responses.
func NewQASetSummary(set *domain.QuestionSet) QASetSummary {
	return QASetSummary{
		ID:            set.ID,
		Theme:         set.Theme,
		LectureNumber: set.LectureNumber,
		SourceFile:    set.SourceFile,
		SourceHead:    set.SourceHead,
		QuestionCount: len(set.Questions),
		CreatedAt:     set.CreatedAt,
	}
}

// NewQASetResponse converts a domain question set to its wire form.
func NewQASetResponse(set *domain.QuestionSet) QASetResponse {
	resp := QASetResponse{
		ID:            set.ID,
		Theme:         set.Theme,
		LectureNumber: set.LectureNumber,
		SourceFile:    set.SourceFile,
		SourceHead:    set.SourceHead,
		Questions:     set.Questions,
		CreatedAt:     set.CreatedAt,
	}
	for _, sub := range set.Submissions {
		resp.Submissions = append(resp.Submissions, NewScoreReportResponse(&sub))
	}
	return resp
}

// NewScoreReportResponse converts a domain score report to its wire form.
func NewScoreReportResponse(report *domain.ScoreReport) ScoreReportResponse {
	return ScoreReportResponse{
		SubmissionID: report.SubmissionID,
		Score:        report.Score,
		CorrectCount: report.CorrectCount,
		TotalCount:   report.TotalCount,
		Results:      report.Results,
		SubmittedAt:  report.SubmittedAt,
	}
}
