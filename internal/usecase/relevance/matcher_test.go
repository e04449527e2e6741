package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techpulse/internal/domain/entity"
)

func TestCountMatches(t *testing.T) {
	interest := &entity.Interest{
		Name:     "AI",
		Keywords: []string{"AI", "Machine Learning"},
		Weight:   2.0,
	}

	tests := []struct {
		name     string
		article  entity.Article
		expected MatchCounts
	}{
		{
			name: "counts every occurrence across keywords",
			article: entity.Article{
				Title:       "New AI breakthrough",
				Description: "Machine Learning and AI advance together",
			},
			expected: MatchCounts{Title: 1, Description: 2},
		},
		{
			name: "matching is case-insensitive both ways",
			article: entity.Article{
				Title:       "new ai breakthrough",
				Description: "MACHINE LEARNING everywhere",
			},
			expected: MatchCounts{Title: 1, Description: 1},
		},
		{
			name: "substring hits inside longer words count",
			article: entity.Article{
				Title:       "Maintaining legacy systems",
				Description: "maintain, maintained, maintainer",
			},
			// "ai" occurs inside every "maintain"
			expected: MatchCounts{Title: 1, Description: 3},
		},
		{
			name: "repeated keyword counted per occurrence",
			article: entity.Article{
				Title:       "AI on AI: the AI report",
				Description: "",
			},
			expected: MatchCounts{Title: 3, Description: 0},
		},
		{
			name:     "no occurrences anywhere",
			article:  entity.Article{Title: "Gardening tips", Description: "Water your plants"},
			expected: MatchCounts{},
		},
		{
			name:     "empty fields",
			article:  entity.Article{},
			expected: MatchCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountMatches(&tt.article, interest))
		})
	}
}

func TestCountMatches_IgnoresBlankKeywords(t *testing.T) {
	interest := &entity.Interest{
		Name:     "Cloud",
		Keywords: []string{"kubernetes", "  ", ""},
		Weight:   1.0,
	}
	article := &entity.Article{Title: "Kubernetes 1.34 released", Description: "short"}

	counts := CountMatches(article, interest)
	assert.Equal(t, MatchCounts{Title: 1, Description: 0}, counts)
}

func TestMatch(t *testing.T) {
	interest := &entity.Interest{
		Name:     "AI",
		Keywords: []string{"AI", "Machine Learning"},
		Weight:   2.0,
	}

	t.Run("candidate with combined score", func(t *testing.T) {
		article := &entity.Article{
			Title:       "New AI breakthrough",
			Description: "Machine Learning and AI advance together",
		}

		scored, ok := Match(article, interest)
		require.True(t, ok)
		assert.Same(t, article, scored.Article)
		assert.Equal(t, "AI", scored.InterestName)
		assert.Equal(t, 1, scored.TitleMatches)
		assert.Equal(t, 2, scored.DescriptionMatches)
		// 2*2.0 + 1*1.5*2.0
		assert.InDelta(t, 7.0, scored.Score, 1e-9)
	})

	t.Run("zero occurrences yields no candidate", func(t *testing.T) {
		article := &entity.Article{Title: "Cooking with cast iron", Description: "Recipes"}

		_, ok := Match(article, interest)
		assert.False(t, ok)
	})
}

func TestMatchAll(t *testing.T) {
	interests := []*entity.Interest{
		{Name: "AI", Keywords: []string{"AI"}, Weight: 2.0},
		{Name: "Security", Keywords: []string{"CVE", "exploit"}, Weight: 1.5},
	}
	articles := []*entity.Article{
		{Title: "AI exploit found", Description: "CVE-2026-0001 details"},
		{Title: "Weekend reading", Description: "Nothing relevant here"},
		{Title: "Faster AI inference", Description: "Throughput doubled"},
	}

	candidates := MatchAll(articles, interests)

	// first article matches both interests, third matches one
	require.Len(t, candidates, 3)
	assert.Equal(t, "AI", candidates[0].InterestName)
	assert.Same(t, articles[0], candidates[0].Article)
	assert.Equal(t, "Security", candidates[1].InterestName)
	assert.Same(t, articles[0], candidates[1].Article)
	assert.Equal(t, "AI", candidates[2].InterestName)
	assert.Same(t, articles[2], candidates[2].Article)
}

func TestMatchAll_EmptyInputs(t *testing.T) {
	assert.Empty(t, MatchAll(nil, nil))
	assert.Empty(t, MatchAll([]*entity.Article{{Title: "x"}}, nil))
	assert.Empty(t, MatchAll(nil, []*entity.Interest{{Name: "AI", Keywords: []string{"ai"}, Weight: 1}}))
}
