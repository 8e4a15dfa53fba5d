// internal/gemini/client.go
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"nutribot/internal/config"
	"nutribot/internal/models"
)

// Client wraps the Gemini API for the three call sites this bot needs:
// meal classification, tip generation, and food suggestions. Each call is
// a single request/response exchange with no retry; a failure surfaces
// immediately to the caller, which decides whether it is fatal to the flow.
type Client struct {
	client     *genai.Client
	httpClient *http.Client
	model      string
	timeout    time.Duration
	log        *slog.Logger
}

func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: gc,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}, nil
}

// ClassifyMeal asks the model for the six food-group fractions of the
// given meal. At least one of description and imageURL must be non-empty.
// Malformed replies fail with ErrInvalidClassification; values in valid
// replies are clamped to [0, 1].
func (c *Client) ClassifyMeal(ctx context.Context, description, imageURL string) (models.Classification, error) {
	var zero models.Classification

	parts := []*genai.Part{genai.NewPartFromText(classifyPrompt)}
	if description != "" {
		parts = append(parts, genai.NewPartFromText(description))
	}
	if imageURL != "" {
		imagePart, err := c.fetchImage(ctx, imageURL)
		if err != nil {
			return zero, fmt.Errorf("failed to fetch meal image: %w", err)
		}
		parts = append(parts, imagePart)
	}
	if len(parts) == 1 {
		return zero, fmt.Errorf("nothing to classify: no description or image")
	}

	raw, err := c.generate(ctx, parts, true)
	if err != nil {
		return zero, fmt.Errorf("classification call failed: %w", err)
	}

	cls, err := parseClassification(raw)
	if err != nil {
		c.log.Warn("unparseable classification reply", "reply_len", len(raw), "error", err)
		return zero, err
	}
	return cls, nil
}

// InferFoodName asks the model to name the food in the image. Used when a
// meal arrives as an image with no text, so the tip can still reference
// the food by name.
func (c *Client) InferFoodName(ctx context.Context, imageURL string) (string, error) {
	imagePart, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}

	parts := []*genai.Part{genai.NewPartFromText(foodNamePrompt), imagePart}
	name, err := c.generate(ctx, parts, false)
	if err != nil {
		return "", fmt.Errorf("food name call failed: %w", err)
	}
	return name, nil
}

// MealTip asks the model for a short coaching message about the meal.
// Best-effort: callers omit the tip on error rather than failing the flow.
func (c *Client) MealTip(ctx context.Context, cls models.Classification, foodName string) (string, error) {
	prompt := fmt.Sprintf(tipPromptFmt, foodName, formatFractions(cls))

	tip, err := c.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, false)
	if err != nil {
		return "", fmt.Errorf("tip call failed: %w", err)
	}
	return tip, nil
}

// SuggestFoods asks the model for one suggestion per underfilled group.
// Callers check for underfilled groups first; this is never called when
// every goal is already met.
func (c *Client) SuggestFoods(ctx context.Context, totals models.Classification, below []models.Group) ([]string, error) {
	names := make([]string, len(below))
	for i, g := range below {
		names[i] = g.DisplayName()
	}
	prompt := fmt.Sprintf(suggestPromptFmt, formatFractions(totals), strings.Join(names, ", "))

	raw, err := c.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, true)
	if err != nil {
		return nil, fmt.Errorf("suggestion call failed: %w", err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		c.log.Warn("unparseable suggestions reply", "reply_len", len(raw), "error", err)
		return nil, err
	}
	return suggestions, nil
}

// generate performs one model call and returns the trimmed reply text.
func (c *Client) generate(ctx context.Context, parts []*genai.Part, jsonReply bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var genCfg *genai.GenerateContentConfig
	if jsonReply {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}

	c.log.Debug("model call completed",
		"model", c.model,
		"duration", time.Since(start),
		"reply_len", len(text))
	return text, nil
}

// fetchImage downloads the attachment bytes and wraps them as an inline
// image part. Discord attachment URLs are short-lived, so the bytes are
// fetched at classification time rather than stored.
func (c *Client) fetchImage(ctx context.Context, url string) (*genai.Part, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return genai.NewPartFromBytes(data, mimeType), nil
}

// formatFractions renders a classification as compact JSON for prompts.
func formatFractions(c models.Classification) string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}
