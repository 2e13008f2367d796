// Package grading scores a learner submission against the canonical answers
// of a question set. Grading is a stateless, single-call transformation; it
// performs no persistence.
package grading

import (
	"fmt"
	"strings"
	"time"

	"lectoquiz/internal/domain"
	"lectoquiz/internal/util"
)

// ErrAnswerCountMismatch is returned when a submission carries fewer answers
// than the set has questions. The mismatch is fatal for the call: grading a
// partial prefix would silently misreport the aggregate score.
type ErrAnswerCountMismatch struct {
	Questions int
	Answers   int
}

func (e *ErrAnswerCountMismatch) Error() string {
	return fmt.Sprintf("submission has %d answers for %d questions", e.Answers, e.Questions)
}

// Grade evaluates answers positionally against the set's questions and
// returns a fresh score report with a generated submission id.
//
// Per-question policy, in order:
//   - a flagged answer is never correct, regardless of content
//   - single_choice requires exact string equality with the correct answer
//   - free_text is correct iff the set's scoring keywords are non-empty, the
//     answer is non-empty, and every keyword appears as a case-insensitive
//     substring of the answer; empty keywords mean always incorrect — there
//     is deliberately no fallback match against the model answer text
func Grade(set *domain.QuestionSet, answers []domain.SubmittedAnswer) (*domain.ScoreReport, error) {
	if len(answers) < len(set.Questions) {
		return nil, &ErrAnswerCountMismatch{Questions: len(set.Questions), Answers: len(answers)}
	}

	results := make([]domain.QuestionResult, 0, len(set.Questions))
	correct := 0

	for i := range set.Questions {
		q := &set.Questions[i]
		ans := answers[i]

		isCorrect := false
		switch {
		case ans.IsFlagged:
			// never scored as correct
		case q.Type == domain.QuestionTypeSingleChoice:
			isCorrect = ans.Answer == q.CorrectAnswer
		case q.Type == domain.QuestionTypeFreeText:
			isCorrect = matchesKeywords(q.ScoringKeywords, ans.Answer)
		}

		if isCorrect {
			correct++
		}
		results = append(results, domain.QuestionResult{
			QuestionID: q.QuestionID,
			IsCorrect:  isCorrect,
			IsFlagged:  ans.IsFlagged,
		})
	}

	total := len(set.Questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	return &domain.ScoreReport{
		SubmissionID: util.NewULID(),
		Score:        score,
		CorrectCount: correct,
		TotalCount:   total,
		Results:      results,
		SubmittedAt:  time.Now().UTC(),
	}, nil
}

// matchesKeywords reports whether every scoring keyword occurs in the answer,
// case-insensitively. An empty keyword set or empty answer never matches.
func matchesKeywords(keywords []string, answer string) bool {
	if len(keywords) == 0 || answer == "" {
		return false
	}
	lowered := strings.ToLower(answer)
	for _, keyword := range keywords {
		if !strings.Contains(lowered, strings.ToLower(keyword)) {
			return false
		}
	}
	return true
}
