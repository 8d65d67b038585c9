package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hetulpatel/valorfinder/internal/llm"
	"github.com/hetulpatel/valorfinder/internal/models"
)

// Client fetches raw match data and match narratives from the generative data
// source. It owns the prompt contents and the response parsing; callers only
// see typed match records or sentinel errors.
type Client struct {
	llm *llm.Client
}

// NewClient wraps an LLM client as a match source.
func NewClient(llmClient *llm.Client) (*Client, error) {
	if llmClient == nil {
		return nil, fmt.Errorf("source: llm client is required")
	}
	return &Client{llm: llmClient}, nil
}

// FetchRawMatches asks the source for fixtures on the given date. Markets in
// the result carry probabilities and odds but no EV figure; derivation is the
// caller's job. Transport failures map to ErrSourceUnavailable, unparseable
// replies to ErrMalformedSourceData.
func (c *Client) FetchRawMatches(ctx context.Context, date time.Time, lang Language) ([]models.Match, error) {
	if c == nil || c.llm == nil {
		return nil, fmt.Errorf("source: client is nil")
	}

	day := date.UTC().Format("2006-01-02")
	raw, err := c.llm.Complete(ctx, matchesSystemPrompt, fetchMatchesPrompt(lang, day))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return ParseRawMatches(raw)
}

// ParseRawMatches decodes a source reply into raw match records. Split out of
// FetchRawMatches so the parsing contract is testable without a live source.
func ParseRawMatches(raw string) ([]models.Match, error) {
	jsonText := extractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("%w: no JSON array in response", ErrMalformedSourceData)
	}

	var parsed []models.Match
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSourceData, err)
	}
	return parsed, nil
}

// FetchAnalysis returns an opaque narrative analysis for the match. The text
// is never parsed here.
func (c *Client) FetchAnalysis(ctx context.Context, match models.Match, lang Language) (string, error) {
	if c == nil || c.llm == nil {
		return "", fmt.Errorf("source: client is nil")
	}

	text, err := c.llm.Complete(ctx, analysisSystemPrompt, analysisPrompt(lang, match))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return text, nil
}
