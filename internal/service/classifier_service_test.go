package service

import (
	"context"
	"testing"

	"spendwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fallbackClassifier builds a classifier with no LLM client, the state the
// service runs in without a GigaChat credential.
func fallbackClassifier(t *testing.T) *ClassifierService {
	t.Helper()
	return &ClassifierService{logger: zaptest.NewLogger(t)}
}

func TestSuggestKeywordMatch(t *testing.T) {
	classifier := fallbackClassifier(t)

	tests := []struct {
		description string
		want        models.ExpenseCategory
	}{
		{"Lunch at the thai restaurant", models.CategoryFood},
		{"Uber to the airport", models.CategoryTransport},
		{"Monthly internet bill", models.CategoryUtilities},
		{"New shoes from the outlet", models.CategoryShopping},
		{"Netflix subscription", models.CategoryEntertainment},
		{"Pharmacy refill", models.CategoryHealthcare},
		{"Go programming course", models.CategoryEducation},
	}

	for _, tt := range tests {
		suggestion := classifier.Suggest(context.Background(), tt.description, 10, nil)
		assert.Equal(t, tt.want, suggestion.Category, tt.description)
		assert.False(t, suggestion.AIGenerated)
		assert.Equal(t, 60, suggestion.Confidence)
	}
}

func TestSuggestNoMatchDefaultsToOther(t *testing.T) {
	classifier := fallbackClassifier(t)

	suggestion := classifier.Suggest(context.Background(), "zzzzz unclassifiable", 10, nil)

	assert.Equal(t, models.CategoryOther, suggestion.Category)
	assert.False(t, suggestion.AIGenerated)
	assert.Equal(t, 20, suggestion.Confidence)
}

func TestSuggestRespectsCandidateList(t *testing.T) {
	classifier := fallbackClassifier(t)

	// "restaurant" would match food, but food is not a candidate here.
	candidates := []models.ExpenseCategory{models.CategoryTransport, models.CategoryOther}
	suggestion := classifier.Suggest(context.Background(), "restaurant dinner", 50, candidates)

	assert.Equal(t, models.CategoryOther, suggestion.Category)
}

func TestSuggestNoOtherCandidateFallsBackToLast(t *testing.T) {
	classifier := fallbackClassifier(t)

	candidates := []models.ExpenseCategory{models.CategoryTransport, models.CategoryShopping}
	suggestion := classifier.Suggest(context.Background(), "zzzzz unclassifiable", 50, candidates)

	require.NotNil(t, suggestion)
	assert.Equal(t, models.CategoryShopping, suggestion.Category)
}
