package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.CategorySuggester using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks the model to pick one of options for description.
func (s *GeminiService) Suggest(ctx context.Context, description string, options []adapter.CategoryOption) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(description, options)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	suggestion, err := parseSuggestion(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestion, nil
}

func buildSuggestionPrompt(description string, options []adapter.CategoryOption) string {
	var sb strings.Builder

	sb.WriteString(`You categorize personal expenses. Pick the single category that best fits the expense description.

RULES:
- Answer with one of the category ids listed below, exactly as written.
- Never invent a new category.
- Confidence is a number between 0 and 1.

CATEGORIES:
`)
	for _, opt := range options {
		sb.WriteString(fmt.Sprintf("- ID: %s, Name: %s, Group: %s\n", opt.ID, opt.Name, opt.ParentName))
	}

	sb.WriteString(fmt.Sprintf("\nEXPENSE DESCRIPTION: %q\n", description))
	sb.WriteString(`
Respond with a JSON object only:
{"category_id": "id from the list", "confidence": 0.0-1.0, "reasoning": "short explanation"}
`)

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	CategoryID string  `json:"category_id"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseSuggestion decodes the model answer. Whether the id is a known leaf is
// checked by the caller.
func parseSuggestion(text string) (*adapter.CategorySuggestion, error) {
	// Models sometimes wrap JSON in markdown fences
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if strings.TrimSpace(raw.CategoryID) == "" {
		return nil, fmt.Errorf("response has no category_id")
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.CategorySuggestion{
		CategoryID: strings.TrimSpace(raw.CategoryID),
		Confidence: confidence,
		Reasoning:  raw.Reasoning,
	}, nil
}
