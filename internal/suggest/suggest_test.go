package suggest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"jobform-api/internal/models"
	"jobform-api/internal/suggest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	out    string
	err    error
	prompt string
	wait   bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

var job = models.JobContext{
	Title:        "Backend Engineer",
	Description:  "Build payment services in Go",
	Requirements: "5 years of Go, PostgreSQL",
}

func newClient(t *testing.T, gen suggest.Generator, opts ...suggest.Option) *suggest.Client {
	t.Helper()
	c, err := suggest.NewClient(gen, opts...)
	require.NoError(t, err)
	return c
}

func TestSuggestFields_ValidResponse(t *testing.T) {
	gen := &fakeGenerator{out: `{"fields":[
		{"label":"Years of Go experience","type":"Number","required":true},
		{"label":"Preferred stack","type":"multiselect","options":["Go","Rust"],"help_text":null}
	]}`}

	got, err := newClient(t, gen).SuggestFields(context.Background(), job)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Years of Go experience", got[0].Label)
	assert.Equal(t, models.FieldTypeNumber, got[0].Type)
	assert.True(t, got[0].Required)
	assert.Equal(t, []string{"Go", "Rust"}, got[1].Options)
	assert.Contains(t, gen.prompt, "Backend Engineer")
	assert.Contains(t, gen.prompt, "multiselect")
}

func TestSuggestFields_StripsMarkdownFence(t *testing.T) {
	gen := &fakeGenerator{out: "```json\n{\"fields\":[{\"label\":\"Portfolio\",\"type\":\"text\"}]}\n```"}

	got, err := newClient(t, gen).SuggestFields(context.Background(), job)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Portfolio", got[0].Label)
}

func TestSuggestFields_MalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not json":       "I would suggest asking about experience.",
		"broken json":    `{"fields":[{"label":"x",`,
		"missing fields": `{"questions":[]}`,
		"wrong shape":    `{"fields":[{"label":3,"type":"text"}]}`,
		"missing type":   `{"fields":[{"label":"Portfolio"}]}`,
	}
	for name, out := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newClient(t, &fakeGenerator{out: out}).SuggestFields(context.Background(), job)
			assert.True(t, errors.Is(err, suggest.ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestSuggestFields_GeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")

	_, err := newClient(t, &fakeGenerator{err: boom}).SuggestFields(context.Background(), job)

	assert.ErrorIs(t, err, boom)
}

func TestSuggestFields_Timeout(t *testing.T) {
	c := newClient(t, &fakeGenerator{wait: true}, suggest.WithTimeout(10*time.Millisecond))

	_, err := c.SuggestFields(context.Background(), job)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSuggestFields_EmptyJobContext(t *testing.T) {
	gen := &fakeGenerator{}

	_, err := newClient(t, gen).SuggestFields(context.Background(), models.JobContext{Title: "  "})

	assert.ErrorIs(t, err, suggest.ErrEmptyJobContext)
	assert.Empty(t, gen.prompt, "model must not be called")
}

func TestSuggestFields_MaxFields(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"fields":[`)
	for i := 0; i < 6; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"label":"Q","type":"text"}`)
	}
	b.WriteString(`]}`)

	got, err := newClient(t, &fakeGenerator{out: b.String()}, suggest.WithMaxFields(4)).
		SuggestFields(context.Background(), job)

	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestBuildPrompt_MissingSections(t *testing.T) {
	p := suggest.BuildPrompt(models.JobContext{Title: "Designer"})

	assert.Contains(t, p, "Designer")
	assert.Contains(t, p, "(not provided)")
}

func TestBuildPrompt_TruncatesOnRuneBoundary(t *testing.T) {
	// 7999 ASCII bytes put the two-byte "é" across the 8000 byte section cap
	desc := strings.Repeat("a", 7999) + "é more text"
	p := suggest.BuildPrompt(models.JobContext{Title: "Café manager", Description: desc})

	assert.True(t, utf8.ValidString(p))
	assert.Contains(t, p, "Café manager")
	assert.Contains(t, p, strings.Repeat("a", 7999))
	assert.NotContains(t, p, "é more")
}

func TestSuggestFields_RateLimited(t *testing.T) {
	gen := &fakeGenerator{out: `{"fields":[{"label":"Portfolio","type":"text"}]}`}
	c := newClient(t, gen, suggest.WithRateLimit(1, 1))

	_, err := c.SuggestFields(context.Background(), job)
	require.NoError(t, err)

	gen.prompt = ""
	_, err = c.SuggestFields(context.Background(), job)
	assert.ErrorIs(t, err, suggest.ErrRateLimited)
	assert.Empty(t, gen.prompt, "model must not be called over the limit")
}
