package llmgen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	response string
	err      error

	lastPrompt string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.lastPrompt = text.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerator_GenerateQASetText(t *testing.T) {
	canned := `Sure, here is your quiz:
{"qa_set": [{"question_id": 1, "type": "free_text", "question_text": "What is ATP?", "correct_answer": "Energy currency", "explanation": "ATP stores energy.", "scoring_keywords": ["energy"]}]}
Let me know if you need more.`

	model := &fakeModel{response: canned}
	gen := New(model, 30*time.Second)

	raw, err := gen.GenerateQASetText(context.Background(), "The cell is the basic unit of life.", 1, "easy")
	require.NoError(t, err)
	assert.Equal(t, canned, raw)

	// The prompt must carry the lecture text and the requested parameters.
	assert.Contains(t, model.lastPrompt, "The cell is the basic unit of life.")
	assert.Contains(t, model.lastPrompt, "1")
	assert.Contains(t, model.lastPrompt, "easy")
}

func TestGenerator_GenerateQASetText_Error(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	gen := New(model, 30*time.Second)

	raw, err := gen.GenerateQASetText(context.Background(), "some text", 3, "normal")
	require.Error(t, err)
	assert.Empty(t, raw)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Photosynthesis converts light into chemical energy.", 5, "hard")

	assert.Contains(t, prompt, "Photosynthesis converts light into chemical energy.")
	assert.Contains(t, prompt, "5")
	assert.Contains(t, prompt, "hard")
	assert.Contains(t, prompt, `"qa_set"`)
	assert.Contains(t, prompt, "single_choice")
	assert.Contains(t, prompt, "free_text")
	assert.Contains(t, prompt, "scoring_keywords")

	// Single JSON document demanded, no markdown fences.
	assert.False(t, strings.Contains(prompt, "```"))
}
