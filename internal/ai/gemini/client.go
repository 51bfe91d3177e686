// Package gemini implements the ai.Client contract with the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// extractionPrompt asks for strict JSON. The 70/30 weighting is a soft,
// prompt-level concern only; nothing downstream measures it.
const extractionPrompt = `You are an ATS analyst. Extract structured hiring requirements from the job description below.

Return STRICTLY one JSON object, no markdown, no explanations, with exactly these keys:
{
  "requiredSkills": string[],
  "preferredSkills": string[],
  "jobLevel": "entry" | "mid" | "senior",
  "industry": string,
  "responsibilities": string[],
  "qualifications": string[]
}

Rules:
- Empty lists must be [], never null.
- Skill names must be canonical (e.g. "PostgreSQL", not "postgres").
- Weight relevance roughly 70%% toward what the job demands and 30%% toward general background expectations.

Job description:
<<<
%s
>>>`

// Client wraps the Google GenAI SDK for requirement extraction.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, modelName: model}, nil
}

// ExtractRequirements sends the posting text to Gemini and returns the raw
// textual response as JSON bytes.
func (c *Client) ExtractRequirements(ctx context.Context, jobText string) (json.RawMessage, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	jobText = strings.TrimSpace(jobText)
	if jobText == "" {
		return nil, errors.New("job text must not be empty")
	}

	prompt := fmt.Sprintf(extractionPrompt, jobText)
	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return nil, errors.New("gemini api returned empty response")
	}
	return json.RawMessage(output), nil
}

// Model reports the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
