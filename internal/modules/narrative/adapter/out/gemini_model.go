package out

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"chronicle/internal/modules/narrative/domain"
	narrativeout "chronicle/internal/modules/narrative/port/out"
)

type GeminiModel struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiModel(ctx context.Context, apiKey, textModel, imageModel string) (narrativeout.Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiModel{client: client, textModel: textModel, imageModel: imageModel}, nil
}

func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

func (m *GeminiModel) GenerateImage(ctx context.Context, prompt string) (domain.Image, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.imageModel, genai.Text(prompt), nil)
	if err != nil {
		return domain.Image{}, classify(err)
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return domain.Image{MIMEType: part.InlineData.MIMEType, Data: part.InlineData.Data}, nil
		}
	}
	return domain.Image{}, domain.ErrNoImage
}

// classify tags quota exhaustion so the service can pick the right fallback.
func classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("gemini request: %w", err)
}
