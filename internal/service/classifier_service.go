package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"spendwise/internal/models"
	"spendwise/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const classifierSystemInstruction = `You are a personal finance assistant. Your only task is to classify a single expense by its description (and optionally its amount) into exactly one category from a list supplied with each request.

Rules:
- Always pick exactly one category from the supplied list, never invent a new one.
- If the expense fits several categories, pick the most specific one.
- Respond with ONLY a valid JSON object, no markdown fences, no commentary:
{"category": "<one of the supplied categories>", "confidence": <integer 0-100>, "reasoning": "<one short sentence>"}`

// keywordRules is the local fallback: lowercase substring match against the
// description, first hit wins. Order matters for overlapping keywords.
var keywordRules = []struct {
	keyword  string
	category models.ExpenseCategory
}{
	{"grocer", models.CategoryFood},
	{"restaurant", models.CategoryFood},
	{"cafe", models.CategoryFood},
	{"coffee", models.CategoryFood},
	{"lunch", models.CategoryFood},
	{"dinner", models.CategoryFood},
	{"pizza", models.CategoryFood},
	{"food", models.CategoryFood},
	{"uber", models.CategoryTransport},
	{"taxi", models.CategoryTransport},
	{"bus", models.CategoryTransport},
	{"train", models.CategoryTransport},
	{"fuel", models.CategoryTransport},
	{"gas station", models.CategoryTransport},
	{"parking", models.CategoryTransport},
	{"electric", models.CategoryUtilities},
	{"water bill", models.CategoryUtilities},
	{"internet", models.CategoryUtilities},
	{"phone", models.CategoryUtilities},
	{"rent", models.CategoryUtilities},
	{"utility", models.CategoryUtilities},
	{"amazon", models.CategoryShopping},
	{"clothes", models.CategoryShopping},
	{"shoes", models.CategoryShopping},
	{"store", models.CategoryShopping},
	{"cinema", models.CategoryEntertainment},
	{"movie", models.CategoryEntertainment},
	{"netflix", models.CategoryEntertainment},
	{"spotify", models.CategoryEntertainment},
	{"concert", models.CategoryEntertainment},
	{"game", models.CategoryEntertainment},
	{"pharmacy", models.CategoryHealthcare},
	{"doctor", models.CategoryHealthcare},
	{"dentist", models.CategoryHealthcare},
	{"hospital", models.CategoryHealthcare},
	{"medicine", models.CategoryHealthcare},
	{"course", models.CategoryEducation},
	{"book", models.CategoryEducation},
	{"tuition", models.CategoryEducation},
	{"school", models.CategoryEducation},
}

// ClassifierService suggests an expense category from a free-text description.
// The GigaChat path is optional: with no credential, a failed client, a
// malformed response or a category outside the candidate list it degrades to
// the keyword fallback. Suggest never returns an error.
type ClassifierService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewClassifierService(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) *ClassifierService {
	s := &ClassifierService{logger: logger}

	if cfg.APIKey == "" {
		logger.Warn("GigaChat API key not configured, category suggestions use keyword rules only")
		return s
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		logger.Warn("GigaChat client unavailable, category suggestions use keyword rules only", zap.Error(err))
		return s
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = classifierSystemInstruction
	model.Temperature = 0.2

	s.client = client
	s.model = model
	return s
}

func (s *ClassifierService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Suggest classifies description into one of candidates. Empty candidates
// defaults to the full category list.
func (s *ClassifierService) Suggest(ctx context.Context, description string, amount float64, candidates []models.ExpenseCategory) *models.CategorySuggestion {
	if len(candidates) == 0 {
		candidates = models.DefaultCategories
	}

	if s.model != nil {
		suggestion, err := s.suggestLLM(ctx, description, amount, candidates)
		if err == nil {
			return suggestion
		}
		s.logger.Warn("LLM category suggestion failed, falling back to keyword rules", zap.Error(err))
	}

	return s.suggestKeywords(description, candidates)
}

func (s *ClassifierService) suggestLLM(ctx context.Context, description string, amount float64, candidates []models.ExpenseCategory) (*models.CategorySuggestion, error) {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, string(c))
	}

	prompt := fmt.Sprintf(`Classify this expense.

Description: %s
Amount: %.2f
Allowed categories: %s

Return ONLY the JSON object.`, description, amount, strings.Join(names, ", "))

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from LLM")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	// Models wrap JSON in markdown fences or prose often enough that we cut
	// the object out of the response instead of trusting it whole.
	jsonStart := strings.Index(content, "{")
	jsonEnd := strings.LastIndex(content, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("invalid response format: %s", content)
	}

	var parsed struct {
		Category   string `json:"category"`
		Confidence int    `json:"confidence"`
		Reasoning  string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	category := models.ExpenseCategory(strings.ToLower(strings.TrimSpace(parsed.Category)))
	if !containsCategory(candidates, category) {
		return nil, fmt.Errorf("suggested category %q not in candidate list", parsed.Category)
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return &models.CategorySuggestion{
		Category:    category,
		Confidence:  confidence,
		Reasoning:   parsed.Reasoning,
		AIGenerated: true,
	}, nil
}

func (s *ClassifierService) suggestKeywords(description string, candidates []models.ExpenseCategory) *models.CategorySuggestion {
	lower := strings.ToLower(description)
	for _, rule := range keywordRules {
		if strings.Contains(lower, rule.keyword) && containsCategory(candidates, rule.category) {
			return &models.CategorySuggestion{
				Category:    rule.category,
				Confidence:  60,
				Reasoning:   fmt.Sprintf("description matches keyword %q", rule.keyword),
				AIGenerated: false,
			}
		}
	}

	fallback := candidates[len(candidates)-1]
	if containsCategory(candidates, models.CategoryOther) {
		fallback = models.CategoryOther
	}
	return &models.CategorySuggestion{
		Category:    fallback,
		Confidence:  20,
		Reasoning:   "no keyword match, defaulting",
		AIGenerated: false,
	}
}

func containsCategory(candidates []models.ExpenseCategory, c models.ExpenseCategory) bool {
	for _, candidate := range candidates {
		if candidate == c {
			return true
		}
	}
	return false
}
