package responder

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"finanalyst/pkg/core/llm"
)

type fakeProvider struct {
	calls      int
	lastPrompt string
	reply      string
	err        error
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestMissingCredentialNeverCallsProvider(t *testing.T) {
	fake := &fakeProvider{reply: "should not be reached"}
	r := New(fake, zerolog.Nop())

	got := r.Respond(context.Background(), "some context", "x", "")
	assert.Equal(t, MissingCredentialText, got)
	assert.Equal(t, 0, fake.calls)

	got = r.Respond(context.Background(), "some context", "x", "   ")
	assert.Equal(t, MissingCredentialText, got)
	assert.Equal(t, 0, fake.calls)
}

func TestProviderErrorIsEmbedded(t *testing.T) {
	fake := &fakeProvider{err: genai.APIError{Code: 429, Message: "quota exceeded"}}
	r := New(fake, zerolog.Nop())

	got := r.Respond(context.Background(), "ctx", "câu hỏi", "key")
	assert.Contains(t, got, "Lỗi gọi Gemini API")
	assert.Contains(t, got, "quota exceeded")
	assert.Equal(t, 1, fake.calls)
}

func TestAlternateBackendStatusErrorIsProviderClass(t *testing.T) {
	fake := &fakeProvider{err: &llm.APIStatusError{Provider: "deepseek", StatusCode: 402, Body: "insufficient balance"}}
	r := New(fake, zerolog.Nop())

	got := r.Respond(context.Background(), "ctx", "câu hỏi", "key")
	assert.Contains(t, got, "Lỗi gọi Gemini API")
	assert.Contains(t, got, "insufficient balance")
	assert.NotContains(t, got, "Đã xảy ra lỗi không xác định")
}

func TestUnknownErrorIsEmbedded(t *testing.T) {
	fake := &fakeProvider{err: errors.New("connection reset")}
	r := New(fake, zerolog.Nop())

	got := r.Respond(context.Background(), "ctx", "câu hỏi", "key")
	assert.Contains(t, got, "Đã xảy ra lỗi không xác định")
	assert.Contains(t, got, "connection reset")
}

func TestSuccessStripsCodeFence(t *testing.T) {
	fake := &fakeProvider{reply: "```markdown\nTài sản tăng mạnh.\n```"}
	r := New(fake, zerolog.Nop())

	got := r.Respond(context.Background(), "ctx", "câu hỏi", "key")
	assert.Equal(t, "Tài sản tăng mạnh.", got)
}

func TestPromptEmbedsContextAndQuestion(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	r := New(fake, zerolog.Nop())

	r.Respond(context.Background(), "BẢNG PHÂN TÍCH", "Tăng trưởng thế nào?", "key")
	require.Equal(t, 1, fake.calls)
	assert.Contains(t, fake.lastPrompt, "BẢNG PHÂN TÍCH")
	assert.Contains(t, fake.lastPrompt, "Tăng trưởng thế nào?")
}

func TestAbsentContextUsesPlaceholder(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	r := New(fake, zerolog.Nop())

	r.Respond(context.Background(), "", "x", "key")
	assert.Contains(t, fake.lastPrompt, NoDataPlaceholder)
}
