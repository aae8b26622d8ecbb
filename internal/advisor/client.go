// Package advisor generates marketing assets through the Gemini API: ad copy
// variations with audience targeting, social posts, video scripts, campaign
// strategies, and image-based business analysis.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("model returned an empty response")

// ImageInput is an inline image passed alongside a prompt.
type ImageInput struct {
	MIMEType string
	Data     []byte
}

// ModelClient is the generation backend. Structured calls decode the model's
// JSON output directly into out.
type ModelClient interface {
	GenerateJSON(ctx context.Context, prompt string, image *ImageInput, out any) error
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiClient implements ModelClient against the Google GenAI API.
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGeminiClient creates a Gemini-backed model client.
func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	if imageModel == "" {
		imageModel = "imagen-3.0-generate-002"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

// GenerateJSON runs a structured generation call and decodes the JSON reply
// into out.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, image *ImageInput, out any) error {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if image != nil {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MIMEType))
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return ErrEmptyResponse
	}

	// Some models wrap JSON in a markdown fence despite the mime type
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), out); err != nil {
		return fmt.Errorf("failed to decode model response: %w", err)
	}
	return nil
}

// GenerateImage produces a single square JPEG for the given prompt.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "1:1",
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, ErrEmptyResponse
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}
