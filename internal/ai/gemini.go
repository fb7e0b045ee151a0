package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements Extractor against the Google Gemini API using
// the official SDK, constrained to the fixed intake schema.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor creates a new Gemini-backed extractor.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(intakeSystemPrompt)},
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = intakeSchema()

	return &GeminiExtractor{
		client: client,
		model:  model,
	}, nil
}

// Close closes the client connection
func (g *GeminiExtractor) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// Extract sends the chat transcript to Gemini and decodes the structured
// order/event pair. One synchronous call, no retry.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) (*ParsedOrder, *ParsedEvent, error) {
	prompt := fmt.Sprintf("Chat transcript:\n---\n%s\n---\nReturn JSON only.", text)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("%w: empty response", ErrBadExtraction)
	}

	var fullText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullText += string(txt)
		}
	}

	return decodeIntake(fullText)
}
