package planner

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const planPrompt = `You convert project plans written in plain text into JSON.
Answer with a single JSON object and nothing else, using exactly this shape:
{
  "project_name": string,
  "project_description": string,
  "project_manager": string (optional),
  "start_date": "YYYY-MM-DD" (optional),
  "end_date": "YYYY-MM-DD" (optional),
  "phases": [
    {
      "title": string,
      "objective": string (optional),
      "tasks": [
        {
          "title": string,
          "description": string (optional),
          "assigned_to": string (optional),
          "start_date": "YYYY-MM-DD" (optional),
          "due_date": "YYYY-MM-DD" (optional)
        }
      ]
    }
  ]
}

Plan text:
`

// GeminiParser parses plans with a Gemini model.
type GeminiParser struct {
	client *genai.Client
	model  string
}

// NewGeminiParser creates a parser backed by the Gemini API.
func NewGeminiParser(ctx context.Context, apiKey, model string) (*GeminiParser, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiParser{client: client, model: model}, nil
}

func (g *GeminiParser) ParseProjectPlan(ctx context.Context, text string) (*Plan, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(planPrompt+text),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return Decode(resp.Text())
}
