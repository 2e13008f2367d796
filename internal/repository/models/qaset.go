package models

import (
	"database/sql"
	"time"
)

// QuestionSet is the database representation of a generated QA set.
// The question sequence is stored as a JSON document in qa_data.
type QuestionSet struct {
	ID            string         `db:"id"`
	Theme         string         `db:"theme"`
	LectureNumber int            `db:"lecture_number"`
	SourceFile    sql.NullString `db:"source_file"`
	SourceHead    string         `db:"source_head"`
	QAData        string         `db:"qa_data"`
	CreatedAt     time.Time      `db:"created_at"`
}

// Submission is one appended score report row. Rows are insert-only; the
// submission history of a set is the ordered sequence of its rows.
type Submission struct {
	ID           string    `db:"id"`
	QASetID      string    `db:"qa_set_id"`
	Score        float64   `db:"score"`
	CorrectCount int       `db:"correct_count"`
	TotalCount   int       `db:"total_count"`
	Results      string    `db:"results"`
	SubmittedAt  time.Time `db:"submitted_at"`
}
