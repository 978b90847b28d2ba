// Package suggest asks a language model for application form fields that fit
// a job posting.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobform-api/internal/models"

	"github.com/qri-io/jsonschema"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrMalformedResponse = errors.New("malformed suggestion response")
	ErrEmptyJobContext   = errors.New("job posting has no title, description or requirements")
	ErrRateLimited       = errors.New("suggestion rate limit reached")
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxFields = 10
)

// Generator produces a completion for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client turns a job posting into field suggestions.
type Client struct {
	gen       Generator
	schema    *jsonschema.Schema
	timeout   time.Duration
	maxFields int
	limiter   *rate.Limiter
	log       *zap.Logger
}

type Option func(*Client)

// WithTimeout bounds a single model call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxFields caps how many suggestions are returned.
func WithMaxFields(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxFields = n
		}
	}
}

// WithRateLimit allows perMinute model calls on average with bursts of burst.
// Calls over the limit fail fast with ErrRateLimited. Zero disables limiting.
func WithRateLimit(perMinute, burst int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(gen Generator, opts ...Option) (*Client, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(responseSchema), rs); err != nil {
		return nil, fmt.Errorf("compile suggestion schema: %w", err)
	}
	c := &Client{
		gen:       gen,
		schema:    rs,
		timeout:   defaultTimeout,
		maxFields: defaultMaxFields,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SuggestFields asks the model for fields. An unusable response is reported
// as ErrMalformedResponse.
func (c *Client) SuggestFields(ctx context.Context, job models.JobContext) ([]models.FieldSuggestion, error) {
	if strings.TrimSpace(job.Title+job.Description+job.Requirements) == "" {
		return nil, ErrEmptyJobContext
	}
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	raw, err := c.gen.Generate(ctx, BuildPrompt(job))
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}
	c.log.Debug("suggestion model responded", zap.Duration("took", time.Since(start)), zap.Int("bytes", len(raw)))

	suggestions, err := c.parse(ctx, raw)
	if err != nil {
		c.log.Warn("discarding suggestion response", zap.Error(err))
		return nil, err
	}
	return suggestions, nil
}

type response struct {
	Fields []models.FieldSuggestion `json:"fields"`
}

func (c *Client) parse(ctx context.Context, raw string) ([]models.FieldSuggestion, error) {
	body := extractJSON(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	keyErrs, err := c.schema.ValidateBytes(ctx, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, keyErrs[0].Error())
	}

	var resp response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Fields) > c.maxFields {
		resp.Fields = resp.Fields[:c.maxFields]
	}
	for i := range resp.Fields {
		resp.Fields[i].Type = models.FieldType(strings.ToLower(strings.TrimSpace(string(resp.Fields[i].Type))))
	}
	return resp.Fields, nil
}

// extractJSON strips markdown fences and surrounding prose.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
