// Package alttext generates and applies alternative text for pictures that
// are missing it or carry an auto-generated placeholder.
package alttext

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DetailLevel selects how thorough a generated description should be.
type DetailLevel string

const (
	// DetailConcise asks for a single short sentence.
	DetailConcise DetailLevel = "concise"
	// DetailDetailed asks for a fuller description, used when an image is
	// the only one on its slide and likely carries the slide's meaning.
	DetailDetailed DetailLevel = "detailed"
)

// Payload is a preprocessed image ready to send to a vision model.
type Payload struct {
	// Format is the encoded image format name, e.g. "jpeg".
	Format string
	Data   []byte
}

// Describer is an abstraction over vision-capable model providers.
type Describer interface {
	// Describe returns alternative text for the image.
	Describe(ctx context.Context, payload Payload, level DetailLevel) (string, error)
	// Close releases any resources held by the describer.
	Close() error
}

// GeminiDescriber implements Describer using Google Gemini vision models.
type GeminiDescriber struct {
	client *genai.Client
	model  string
}

// NewGeminiDescriber creates a describer bound to the given model.
func NewGeminiDescriber(ctx context.Context, model, apiKey string) (*GeminiDescriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiDescriber{client: client, model: model}, nil
}

const (
	concisePrompt = "Write alternative text for this image in one short sentence. " +
		"Describe what the image shows, not that it is an image. " +
		"Return only the sentence, no quotes or preamble."
	detailedPrompt = "Write alternative text for this image in two to three sentences. " +
		"This image is the main content of a presentation slide, so describe what it " +
		"shows and any text or data visible in it. " +
		"Return only the description, no quotes or preamble."
)

// Describe sends the image to the configured model and returns sanitized
// alternative text.
func (d *GeminiDescriber) Describe(ctx context.Context, payload Payload, level DetailLevel) (string, error) {
	model := d.client.GenerativeModel(d.model)
	model.SetTemperature(0.1) // Low temperature for consistent output

	prompt := concisePrompt
	if level == DetailDetailed {
		prompt = detailedPrompt
	}

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(payload.Format, payload.Data),
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return SanitizeAltText(text), nil
}

// Close releases resources held by the describer.
func (d *GeminiDescriber) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// maxAltTextLen caps generated descriptions so they stay usable as alt text.
const maxAltTextLen = 500

// SanitizeAltText normalizes model output into a single clean line: quotes
// and surrounding whitespace are stripped, internal whitespace collapsed, and
// overlong output is truncated at a word boundary.
func SanitizeAltText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	text = strings.Join(strings.Fields(text), " ")

	if len(text) <= maxAltTextLen {
		return text
	}
	cut := text[:maxAltTextLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
