// Package extract recovers the structured QA document embedded in a raw
// model completion. Model output is not guaranteed to be clean: it may carry
// leading or trailing prose around the JSON document, or several top-level
// JSON objects concatenated without separators.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"lectoquiz/internal/domain"
)

// Kind discriminates extraction failures.
type Kind int

const (
	// KindNoJSONFound means no object delimiter pair was located in the text.
	KindNoJSONFound Kind = iota + 1
	// KindMalformedJSON means delimiters were found but the content was not
	// parsable, even after the concatenation retry.
	KindMalformedJSON
	// KindMissingQASet means a document parsed but lacks the qa_set field.
	KindMissingQASet
)

func (k Kind) String() string {
	switch k {
	case KindNoJSONFound:
		return "no JSON found"
	case KindMalformedJSON:
		return "malformed JSON"
	case KindMissingQASet:
		return "missing qa_set"
	default:
		return "unknown"
	}
}

// Error is a typed extraction failure carrying the underlying parser
// diagnostic when one exists.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DomainCode maps the failure kind onto the domain error taxonomy.
func (e *Error) DomainCode() domain.ErrorCode {
	switch e.Kind {
	case KindNoJSONFound:
		return domain.CodeNoJSONFound
	case KindMissingQASet:
		return domain.CodeMissingQASet
	default:
		return domain.CodeMalformedJSON
	}
}

// Extract locates the QA document in rawText and returns its question
// sequence. It is a pure function over its input.
//
// The candidate slice spans the first '{' to the last '}'. A strict parse is
// attempted first; if the slice holds a syntactically valid value followed by
// more data (the model emitted sibling objects instead of an array), the
// slice is re-read as a stream of documents and the whole sequence becomes
// the qa_set. Any other parse failure is reported as malformed.
func Extract(rawText string) ([]domain.Question, error) {
	elements, err := extractElements(rawText)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(elements))
	for _, elem := range elements {
		var q domain.Question
		if unmarshalErr := json.Unmarshal(elem, &q); unmarshalErr != nil {
			return nil, &Error{Kind: KindMalformedJSON, Cause: unmarshalErr}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// extractElements returns the raw qa_set elements embedded in rawText.
func extractElements(rawText string) ([]json.RawMessage, error) {
	start := strings.Index(rawText, "{")
	end := strings.LastIndex(rawText, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &Error{Kind: KindNoJSONFound}
	}
	slice := rawText[start : end+1]

	dec := json.NewDecoder(strings.NewReader(slice))
	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return nil, &Error{Kind: KindMalformedJSON, Cause: err}
	}

	if dec.More() {
		// More than one top-level value: the model emitted a comma-free
		// continuation of sibling objects. Recover the whole sequence.
		sequence := []json.RawMessage{first}
		for dec.More() {
			var next json.RawMessage
			if err := dec.Decode(&next); err != nil {
				return nil, &Error{Kind: KindMalformedJSON, Cause: err}
			}
			sequence = append(sequence, next)
		}
		return sequence, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(first, &doc); err != nil {
		return nil, &Error{Kind: KindMalformedJSON, Cause: err}
	}

	rawSet, ok := doc["qa_set"]
	if !ok {
		return nil, &Error{Kind: KindMissingQASet}
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(rawSet, &elements); err != nil {
		// qa_set present but not bound to an ordered sequence.
		return nil, &Error{Kind: KindMissingQASet, Cause: err}
	}
	return elements, nil
}
