// Package textgen wraps the hosted text-generation API used for drafting
// post captions.
package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/observability"

	"github.com/go-resty/resty/v2"
)

const defaultModel = "gemini-2.0-flash"

// Client calls the generateContent endpoint of the text-generation API.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

// NewClient creates a text-generation client for the given base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c, apiKey: apiKey, model: defaultModel}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", models.NewValidationError("Prompt is required")
	}
	if c.apiKey == "" {
		return "", models.NewInternalError(fmt.Errorf("text generation API key not configured"))
	}

	var result generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{
			Contents: []content{{Parts: []part{{Text: prompt}}}},
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		observability.ExternalAPICalls.WithLabelValues("textgen", "error").Inc()
		return "", models.NewInternalError(fmt.Errorf("text generation API unreachable: %w", err))
	}
	if resp.IsError() {
		observability.ExternalAPICalls.WithLabelValues("textgen", "error").Inc()
		return "", models.NewInternalError(fmt.Errorf("text generation API returned status %d", resp.StatusCode()))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		observability.ExternalAPICalls.WithLabelValues("textgen", "empty").Inc()
		return "", models.NewInternalError(fmt.Errorf("text generation API returned no candidates"))
	}

	observability.ExternalAPICalls.WithLabelValues("textgen", "success").Inc()
	return result.Candidates[0].Content.Parts[0].Text, nil
}
