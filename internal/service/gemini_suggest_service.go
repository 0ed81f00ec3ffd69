package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sadeghizad/Form-creator/config"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// SuggestService drafts questions with Gemini for a builder to review and
// edit before saving. Suggestions are never persisted directly.
type SuggestService interface {
	SuggestQuestions(ctx context.Context, req dto.SuggestQuestionsRequest) ([]dto.QuestionSuggestion, error)
}

type suggestService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewSuggestService(cfg *config.Config) (SuggestService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. SuggestService will be non-functional.")
		return &suggestService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &suggestService{client: model, cfg: cfg}, nil
}

func (s *suggestService) SuggestQuestions(ctx context.Context, req dto.SuggestQuestionsRequest) ([]dto.QuestionSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	count := req.Count
	if count <= 0 || count > 10 {
		count = 5
	}

	var prompt strings.Builder
	prompt.WriteString("You are helping an author draft questions for a survey form.\n")
	prompt.WriteString(fmt.Sprintf("Draft %d questions about the following topic:\n---\n%s\n---\n\n", count, req.Topic))
	prompt.WriteString("Each question has one of three types:\n")
	prompt.WriteString(fmt.Sprintf("  %d = free text, %d = checkbox (multiple selections), %d = single choice\n\n",
		model.QuestionText, model.QuestionCheckbox, model.QuestionSingleChoice))
	prompt.WriteString("Respond with ONLY a JSON array, no markdown fences, in this shape:\n")
	prompt.WriteString(`[{"text": "...", "type": 3, "options": ["...", "..."]}]` + "\n")
	prompt.WriteString("Text questions must have no options; checkbox and single choice questions need 2-5 options.\n")

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("Gemini API error during question suggestion")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}

	suggestions, err := parseSuggestions(raw.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw.String()).Msg("Failed to parse Gemini suggestion response")
		return nil, fmt.Errorf("could not parse AI response: %w", err)
	}
	return suggestions, nil
}

// parseSuggestions tolerates the markdown fences Gemini wraps JSON in even
// when told not to, then drops entries whose type is not one of ours.
func parseSuggestions(raw string) ([]dto.QuestionSuggestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var suggestions []dto.QuestionSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, err
	}

	valid := suggestions[:0]
	for _, sg := range suggestions {
		if sg.Text == "" || !model.QuestionType(sg.Type).Valid() {
			continue
		}
		if !model.QuestionType(sg.Type).HasOptions() {
			sg.Options = nil
		}
		valid = append(valid, sg)
	}
	return valid, nil
}
