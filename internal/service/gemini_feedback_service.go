package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/questline/backend/config"
	"github.com/questline/backend/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// FeedbackService generates the narrative recommendation handed back to the
// learner after a completed diagnostic. It is an injected capability so tests
// swap it for a deterministic stub; the engine never interprets the text.
type FeedbackService interface {
	GenerateRecommendation(results []model.AreaResult, averageScore int) (string, error)
}

type geminiFeedbackService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiFeedbackService(cfg *config.Config) (FeedbackService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. FeedbackService will always fall back to static recommendations.")
		return &geminiFeedbackService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiFeedbackService{client: model, cfg: cfg}, nil
}

func (s *geminiFeedbackService) GenerateRecommendation(results []model.AreaResult, averageScore int) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	ctx := context.Background()

	var promptBuilder strings.Builder
	promptBuilder.WriteString("You are an encouraging tutor on a gamified learning platform for school students.\n")
	promptBuilder.WriteString("A student just finished the placement diagnostic. Their results per subject area:\n\n")
	for _, r := range results {
		promptBuilder.WriteString(fmt.Sprintf("- %s: %d%% (placed at difficulty tier %d of 3)\n", r.Area, r.ScorePercent, r.RecommendedDifficulty))
	}
	promptBuilder.WriteString(fmt.Sprintf("\nOverall average: %d%%.\n\n", averageScore))
	promptBuilder.WriteString("Write a short, warm recommendation (3-5 sentences) telling the student where to start, ")
	promptBuilder.WriteString("which areas look strong, and which could use extra practice. Address the student directly. ")
	promptBuilder.WriteString("Plain text only, no headings or bullet points.")

	resp, err := s.client.GenerateContent(ctx, genai.Text(promptBuilder.String()))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during recommendation generation")
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}

	return strings.TrimSpace(fullResponseText), nil
}

// FallbackRecommendation is the deterministic text substituted when the
// feedback generator fails. Derived only from the average score's tier so the
// diagnostic completion flow never blocks on text generation.
func FallbackRecommendation(averageScore int) string {
	switch {
	case averageScore >= advancedThreshold:
		return "Excellent work on your placement quiz! You are ready for advanced missions. Pick any area and dive into the harder challenges."
	case averageScore >= intermediateThreshold:
		return "Nice job on your placement quiz! Intermediate missions are a great fit for you. Start there and work your way up."
	default:
		return "Thanks for finishing your placement quiz! The introductory missions will help you build a strong foundation. Take them one step at a time."
	}
}
