// Package validation checks incoming request DTOs before they reach the
// service layer. All failures for a request are collected and reported
// together.
package validation

import (
	"regexp"
	"strings"

	"lectoquiz/internal/domain"
	"lectoquiz/internal/dto"
)

const (
	// MaxLectureChars bounds lecture text so a single request cannot blow
	// up the prompt sent to the LLM.
	MaxLectureChars = 100000

	MinQuestions = 1
	MaxQuestions = 20

	MaxThemeLen    = 255
	MaxFileNameLen = 255
)

var themePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} _.-]*$`)

func validDifficulty(d string) bool {
	switch d {
	case "easy", "normal", "hard":
		return true
	}
	return false
}

// ValidateGenerateRequest validates a synchronous generation request.
// Zero-valued NumQuestions and Difficulty are allowed; the service fills
// in configured defaults.
func ValidateGenerateRequest(req *dto.GenerateRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.LectureText) == "" {
		errs = append(errs, domain.NewMissingFieldError("lecture_text"))
	} else if len(req.LectureText) > MaxLectureChars {
		errs = append(errs, domain.NewOutOfRangeError("lecture_text", len(req.LectureText), 1, MaxLectureChars))
	}

	errs = append(errs, validateTheme(req.Theme)...)

	if req.LectureNumber < 0 {
		errs = append(errs, domain.NewOutOfRangeError("lecture_number", req.LectureNumber, 0, int(^uint(0)>>1)))
	}
	if req.NumQuestions != 0 && (req.NumQuestions < MinQuestions || req.NumQuestions > MaxQuestions) {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", req.NumQuestions, MinQuestions, MaxQuestions))
	}
	if req.Difficulty != "" && !validDifficulty(req.Difficulty) {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	return errs
}

// ValidateUploadRequest validates a presigned upload request.
func ValidateUploadRequest(req *dto.UploadRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	name := strings.TrimSpace(req.FileName)
	if name == "" {
		errs = append(errs, domain.NewMissingFieldError("file_name"))
	} else if len(name) > MaxFileNameLen || strings.ContainsAny(name, "/\\") {
		errs = append(errs, domain.NewInvalidFormatError("file_name", req.FileName))
	}

	errs = append(errs, validateTheme(req.Theme)...)

	if req.LectureNumber < 0 {
		errs = append(errs, domain.NewOutOfRangeError("lecture_number", req.LectureNumber, 0, int(^uint(0)>>1)))
	}
	if req.NumQuestions != 0 && (req.NumQuestions < MinQuestions || req.NumQuestions > MaxQuestions) {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", req.NumQuestions, MinQuestions, MaxQuestions))
	}
	if req.Difficulty != "" && !validDifficulty(req.Difficulty) {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	return errs
}

// ValidateSubmitRequest validates an answer submission. Count alignment with
// the stored question set is checked later by the grader, which knows the
// set size.
func ValidateSubmitRequest(req *dto.SubmitRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(req.Answers) == 0 {
		errs = append(errs, domain.NewMissingFieldError("answers"))
	}
	return errs
}

func validateTheme(theme string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(theme) == "" {
		errs = append(errs, domain.NewMissingFieldError("theme"))
		return errs
	}
	if len(theme) > MaxThemeLen || !themePattern.MatchString(theme) {
		errs = append(errs, domain.NewInvalidFormatError("theme", theme))
	}
	return errs
}
