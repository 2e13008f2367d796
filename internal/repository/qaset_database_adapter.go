package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"lectoquiz/internal/domain"
	"lectoquiz/internal/repository/models"
	"lectoquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// QASetDatabaseAdapter implements domain.QuestionSetRepository using sqlx.DB.
type QASetDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQASetDatabaseAdapter creates a new instance of QASetDatabaseAdapter.
func NewQASetDatabaseAdapter(db *sqlx.DB) domain.QuestionSetRepository {
	return &QASetDatabaseAdapter{db: db}
}

// Save implements domain.QuestionSetRepository.
func (a *QASetDatabaseAdapter) Save(ctx context.Context, set *domain.QuestionSet) error {
	model, err := toModelQuestionSet(set)
	if err != nil {
		return err
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO question_sets (
		id, theme, lecture_number, source_file, source_head, qa_data, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	_, err = a.db.ExecContext(ctx, query,
		model.ID,
		model.Theme,
		model.LectureNumber,
		model.SourceFile,
		model.SourceHead,
		model.QAData,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question set: %w", err)
	}

	set.ID = model.ID
	set.CreatedAt = model.CreatedAt
	return nil
}

// GetByID implements domain.QuestionSetRepository. It returns (nil, nil)
// when no set exists for the given id.
func (a *QASetDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.QuestionSet, error) {
	var model models.QuestionSet
	query := `SELECT
		id "id",
		theme "theme",
		lecture_number "lecture_number",
		source_file "source_file",
		source_head "source_head",
		qa_data "qa_data",
		created_at "created_at"
	FROM question_sets
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question set by ID %s: %w", id, err)
	}

	set, err := toDomainQuestionSet(&model)
	if err != nil {
		return nil, err
	}

	submissions, err := a.listSubmissions(ctx, id)
	if err != nil {
		return nil, err
	}
	set.Submissions = submissions
	return set, nil
}

// List implements domain.QuestionSetRepository. Submission histories are not
// loaded for listings; callers fetch a single set when they need them.
func (a *QASetDatabaseAdapter) List(ctx context.Context, theme string, lectureNumber int) ([]*domain.QuestionSet, error) {
	baseQuery := `SELECT
		id "id",
		theme "theme",
		lecture_number "lecture_number",
		source_file "source_file",
		source_head "source_head",
		qa_data "qa_data",
		created_at "created_at"
	FROM question_sets`

	var modelSets []models.QuestionSet
	var err error
	switch {
	case theme != "" && lectureNumber > 0:
		err = a.db.SelectContext(ctx, &modelSets,
			baseQuery+` WHERE theme = :1 AND lecture_number = :2 ORDER BY created_at DESC`,
			theme, lectureNumber)
	case theme != "":
		err = a.db.SelectContext(ctx, &modelSets,
			baseQuery+` WHERE theme = :1 ORDER BY created_at DESC`, theme)
	default:
		err = a.db.SelectContext(ctx, &modelSets, baseQuery+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list question sets: %w", err)
	}

	sets := make([]*domain.QuestionSet, 0, len(modelSets))
	for i := range modelSets {
		set, convErr := toDomainQuestionSet(&modelSets[i])
		if convErr != nil {
			return nil, convErr
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// Delete implements domain.QuestionSetRepository. The submission history is
// removed together with the set.
func (a *QASetDatabaseAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM qa_submissions WHERE qa_set_id = :1`, id); err != nil {
		return fmt.Errorf("failed to delete submissions for set %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM question_sets WHERE id = :1`, id); err != nil {
		return fmt.Errorf("failed to delete question set %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete for set %s: %w", id, err)
	}
	return nil
}

// AppendSubmission implements domain.QuestionSetRepository. Appending is a
// single row insert, which makes concurrent submissions safe without a
// read-modify-write cycle on the set.
func (a *QASetDatabaseAdapter) AppendSubmission(ctx context.Context, qaSetID string, report *domain.ScoreReport) error {
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal submission results: %w", err)
	}

	query := `INSERT INTO qa_submissions (
		id, qa_set_id, score, correct_count, total_count, results, submitted_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	// Scores are persisted with one decimal of precision; rounding happens
	// here at the serialization boundary, not inside the grader.
	_, err = a.db.ExecContext(ctx, query,
		report.SubmissionID,
		qaSetID,
		util.Round1(report.Score),
		report.CorrectCount,
		report.TotalCount,
		string(resultsJSON),
		report.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append submission for set %s: %w", qaSetID, err)
	}
	return nil
}

func (a *QASetDatabaseAdapter) listSubmissions(ctx context.Context, qaSetID string) ([]domain.ScoreReport, error) {
	var modelSubs []models.Submission
	query := `SELECT
		id "id",
		qa_set_id "qa_set_id",
		score "score",
		correct_count "correct_count",
		total_count "total_count",
		results "results",
		submitted_at "submitted_at"
	FROM qa_submissions
	WHERE qa_set_id = :1
	ORDER BY submitted_at ASC`

	if err := a.db.SelectContext(ctx, &modelSubs, query, qaSetID); err != nil {
		return nil, fmt.Errorf("failed to list submissions for set %s: %w", qaSetID, err)
	}

	reports := make([]domain.ScoreReport, 0, len(modelSubs))
	for i := range modelSubs {
		report, err := toDomainScoreReport(&modelSubs[i])
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func toModelQuestionSet(set *domain.QuestionSet) (*models.QuestionSet, error) {
	qaData, err := json.Marshal(set.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return &models.QuestionSet{
		ID:            set.ID,
		Theme:         set.Theme,
		LectureNumber: set.LectureNumber,
		SourceFile:    sql.NullString{String: set.SourceFile, Valid: set.SourceFile != ""},
		SourceHead:    set.SourceHead,
		QAData:        string(qaData),
		CreatedAt:     set.CreatedAt,
	}, nil
}

func toDomainQuestionSet(model *models.QuestionSet) (*domain.QuestionSet, error) {
	var questions []domain.Question
	if model.QAData != "" {
		if err := json.Unmarshal([]byte(model.QAData), &questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions for set %s: %w", model.ID, err)
		}
	}
	return &domain.QuestionSet{
		ID:            model.ID,
		Theme:         model.Theme,
		LectureNumber: model.LectureNumber,
		SourceFile:    model.SourceFile.String,
		SourceHead:    model.SourceHead,
		Questions:     questions,
		CreatedAt:     model.CreatedAt,
	}, nil
}

func toDomainScoreReport(model *models.Submission) (*domain.ScoreReport, error) {
	var results []domain.QuestionResult
	if model.Results != "" {
		if err := json.Unmarshal([]byte(model.Results), &results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal results for submission %s: %w", model.ID, err)
		}
	}
	return &domain.ScoreReport{
		SubmissionID: model.ID,
		Score:        model.Score,
		CorrectCount: model.CorrectCount,
		TotalCount:   model.TotalCount,
		Results:      results,
		SubmittedAt:  model.SubmittedAt,
	}, nil
}
