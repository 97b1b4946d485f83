// Package gemini implements the domain.Generator port on the Gemini API.
//
// The oracle is advisory and non-deterministic; this adapter only moves text
// in and out. Reply parsing and failure classification live in the usecase
// layer.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the Google GenAI client for single-prompt generation.
type Client struct {
	client    *genai.Client
	modelName string
}

// New constructs a Client for the Gemini API backend. The API key must be
// non-empty; callers that have no key should not construct a Client at all.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("op=gemini.new: %w: api key required", domain.ErrOracleNotConfigured)
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("op=gemini.new: %w", err)
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Client{client: c, modelName: model}, nil
}

// Generate performs one synchronous generation call. A content-policy block is
// not an error at this layer: it is reported through Generation.BlockReason so
// the caller can surface it distinctly.
func (c *Client) Generate(ctx domain.Context, prompt string) (domain.Generation, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return domain.Generation{}, fmt.Errorf("op=gemini.generate: %w", err)
	}

	var g domain.Generation
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		g.BlockReason = string(resp.PromptFeedback.BlockReason)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			t := strings.TrimSpace(part.Text)
			if t == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(t)
		}
	}
	g.Text = strings.TrimSpace(sb.String())
	return g, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.modelName }
