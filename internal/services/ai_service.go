package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/generative-ai-go/genai"
	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
	"google.golang.org/api/option"
)

// TextGenerator produces a free-form reply for a user message. Failures are
// reported as UPSTREAM_UNAVAILABLE so callers can pick a canned fallback.
type TextGenerator interface {
	Generate(ctx context.Context, message string) (string, error)
}

type generateRequest struct {
	Message string `json:"message"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// EndpointGenerator talks to the self-hosted text-generation endpoint:
// POST {"message": ...} in, {"response": ...} out.
type EndpointGenerator struct {
	client *resty.Client
	url    string
}

func NewEndpointGenerator(url string, timeout time.Duration) *EndpointGenerator {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &EndpointGenerator{
		client: client,
		url:    url,
	}
}

func (g *EndpointGenerator) Generate(ctx context.Context, message string) (string, error) {
	var result generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(generateRequest{Message: message}).
		SetResult(&result).
		Post(g.url)
	if err != nil {
		return "", apperrors.NewUpstreamError(err, "endpoint")
	}
	if resp.IsError() {
		return "", apperrors.NewUpstreamError(fmt.Errorf("unexpected status %s", resp.Status()), "endpoint").
			WithContext("status_code", resp.StatusCode())
	}
	if result.Response == "" {
		return "", apperrors.NewUpstreamError(fmt.Errorf("empty response field"), "endpoint")
	}
	return result.Response, nil
}

// GeminiGenerator uses Google's Gemini as the text-generation backend.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  "gemini-1.5-flash",
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, message string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", apperrors.NewUpstreamError(err, "gemini")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewUpstreamError(fmt.Errorf("empty candidate list"), "gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", apperrors.NewUpstreamError(fmt.Errorf("unexpected part type %T", resp.Candidates[0].Content.Parts[0]), "gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
