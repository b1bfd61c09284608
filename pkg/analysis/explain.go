package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/resumematch/pkg/llm"
)

// Explainer writes recommendations for a finished report. It never sees the
// resume or JD text and cannot change scores.
type Explainer interface {
	Recommend(ctx context.Context, rep Report) ([]string, error)
	Model() string
}

const maxRecommendations = 10

// LLMExplainer asks a chat model for recommendations.
type LLMExplainer struct {
	chat  llm.ChatModel
	model string
}

func NewLLMExplainer(chat llm.ChatModel, model string) *LLMExplainer {
	return &LLMExplainer{chat: chat, model: model}
}

func (e *LLMExplainer) Model() string { return e.model }

const explainSystemPrompt = "You are a hiring assistant. You receive a finished resume vs job description match report as JSON. " +
	"Do not re-score anything. Reply strictly with JSON of the form {\"recommendations\": [\"...\"]} " +
	"with short, concrete advice for the candidate grounded only in the report."

type recommendationPayload struct {
	Recommendations []string `json:"recommendations"`
}

func (e *LLMExplainer) Recommend(ctx context.Context, rep Report) ([]string, error) {
	body, err := json.Marshal(rep)
	if err != nil {
		return nil, err
	}
	raw, err := e.chat.Ask(ctx, explainSystemPrompt, "Report:\n"+string(body))
	if err != nil {
		return nil, err
	}
	recs, err := parseRecommendations(raw)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// parseRecommendations accepts a bare JSON object or one wrapped in prose or a
// code fence.
func parseRecommendations(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	var out recommendationPayload
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		i, j := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
		if i < 0 || j <= i {
			return nil, errors.New("no JSON object in model reply")
		}
		if err := json.Unmarshal([]byte(raw[i:j+1]), &out); err != nil {
			return nil, fmt.Errorf("decode model reply: %w", err)
		}
	}
	recs := make([]string, 0, len(out.Recommendations))
	for _, r := range out.Recommendations {
		if r = strings.TrimSpace(r); r != "" {
			recs = append(recs, r)
		}
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs, nil
}

// withRecommendations returns a copy of rep whose only change is the
// recommendation list.
func withRecommendations(rep Report, recs []string) Report {
	out := rep
	out.Recommendations = append([]string{}, recs...)
	return out
}
