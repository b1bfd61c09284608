package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	reply  string
	err    error
	prompt string
}

func (s *stubChat) Ask(_ context.Context, _, userPrompt string) (string, error) {
	s.prompt = userPrompt
	return s.reply, s.err
}

func TestParseRecommendations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
		err  bool
	}{
		{"bare", `{"recommendations":["Learn Docker"]}`, []string{"Learn Docker"}, false},
		{"fenced", "```json\n{\"recommendations\": [\"Learn Docker\", \" \"]}\n```", []string{"Learn Docker"}, false},
		{"prose", `Sure! {"recommendations":["a","b"]} Good luck.`, []string{"a", "b"}, false},
		{"empty list", `{"recommendations":[]}`, []string{}, false},
		{"no json", "I cannot help", nil, true},
		{"broken json", `{"recommendations": [}`, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRecommendations(tc.raw)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRecommendationsCapsLength(t *testing.T) {
	raw := `{"recommendations":["1","2","3","4","5","6","7","8","9","10","11","12"]}`
	got, err := parseRecommendations(raw)
	require.NoError(t, err)
	assert.Len(t, got, maxRecommendations)
}

func TestLLMExplainerSendsReport(t *testing.T) {
	chat := &stubChat{reply: `{"recommendations":["Add Docker projects"]}`}
	e := NewLLMExplainer(chat, "test/model")

	recs, err := e.Recommend(context.Background(), Report{OverallMatchScore: 0.42, Risks: []string{"Experience Gap (-1 years)"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Add Docker projects"}, recs)
	assert.Contains(t, chat.prompt, `"overall_match_score":0.42`)
	assert.Equal(t, "test/model", e.Model())
}

func TestLLMExplainerPropagatesErrors(t *testing.T) {
	e := NewLLMExplainer(&stubChat{err: errors.New("timeout")}, "m")
	_, err := e.Recommend(context.Background(), Report{})
	assert.Error(t, err)
}

func TestWithRecommendationsTouchesNothingElse(t *testing.T) {
	rep := Report{OverallMatchScore: 0.5, Risks: []string{"r"}, Strengths: []string{"s"}, Recommendations: []string{}}
	out := withRecommendations(rep, []string{"x"})

	assert.Equal(t, []string{"x"}, out.Recommendations)
	out.Recommendations = rep.Recommendations
	assert.Equal(t, rep, out)
}
