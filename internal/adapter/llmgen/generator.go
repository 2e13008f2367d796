// Package llmgen implements domain.TextGenerator on top of a langchaingo
// language model. The adapter only produces raw completion text; locating
// and parsing the embedded QA document is the extractor's job, since the
// model cannot be trusted to emit clean JSON.
package llmgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lectoquiz/internal/domain"
	"lectoquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const promptTemplate = `You are an expert at writing questions that measure a learner's understanding of lecture content.
Create a high-quality QA set from the lecture below, following these rules.

# Rules
- Mix "single_choice" and "free_text" question types in a balanced way.
- Create %d questions at difficulty "%s".
- Every question must include a short explanation of why the answer is correct.
- For free_text questions, include 2-5 scoring_keywords that a correct answer must contain.
- The output must be exactly the JSON format below, with no extra text before or after it.

# JSON format
{
  "qa_set": [
    {
      "question_id": 1,
      "difficulty": "easy",
      "type": "single_choice",
      "question_text": "question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correct_answer": "the correct option",
      "explanation": "explanation text",
      "scoring_keywords": []
    }
  ]
}

---
Lecture content:
%s`

// Generator implements domain.TextGenerator using a langchaingo model.
type Generator struct {
	llm     llms.Model
	timeout time.Duration
}

// New creates a Generator from an already constructed model. Injecting the
// model keeps the adapter testable without a live LLM server.
func New(llm llms.Model, timeout time.Duration) *Generator {
	return &Generator{llm: llm, timeout: timeout}
}

// NewOllama creates a Generator backed by an Ollama server.
func NewOllama(serverURL, model string, timeout time.Duration) (*Generator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("LLM server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return New(llm, timeout), nil
}

// GenerateQASetText implements domain.TextGenerator.
func (g *Generator) GenerateQASetText(ctx context.Context, lectureText string, numQuestions int, difficulty string) (string, error) {
	l := logger.Get()

	prompt := BuildPrompt(lectureText, numQuestions, difficulty)
	l.Debug("Calling LLM for QA generation",
		zap.Int("num_questions", numQuestions),
		zap.String("difficulty", difficulty),
		zap.Int("lecture_chars", len(lectureText)))

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	return response, nil
}

// BuildPrompt renders the generation prompt for the given lecture text.
func BuildPrompt(lectureText string, numQuestions int, difficulty string) string {
	return fmt.Sprintf(promptTemplate, numQuestions, difficulty, strings.TrimSpace(lectureText))
}

var _ domain.TextGenerator = (*Generator)(nil)
