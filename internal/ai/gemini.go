// Package ai generates spending insights and answers using the Gemini API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/castlebridge/expensetrackr/backend/internal/model"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// PromptRecord is the provider-agnostic shape an expense record takes inside
// a prompt.
type PromptRecord struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // ISO 8601
}

// GeminiClient calls the Gemini API for insight generation and free-form
// spending Q&A.
type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: defaultGeminiBaseURL,
	}
}

// geminiInsight is the JSON shape the model is asked to produce per insight.
type geminiInsight struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
}

type geminiInsightResponse struct {
	Insights []geminiInsight `json:"insights"`
}

// GenerateInsights asks Gemini for a ranked list of structured insights over
// the given records.
func (c *GeminiClient) GenerateInsights(ctx context.Context, records []PromptRecord) ([]model.Insight, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}
	if len(records) == 0 {
		return nil, nil
	}

	recordJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}

	prompt := fmt.Sprintf(`You are a personal-finance assistant. Analyze the user's recent expenses and produce 3-4 concise, actionable insights about their spending patterns, ranked most useful first.

Rules:
- type is one of "info", "tip", "warning"
- message is 1-2 sentences, specific to the data (reference categories or amounts)
- action is a short imperative label for a suggested next step, or "" if none
- confidence is 0.0-1.0

Return JSON only:
{"insights": [{"id": "...", "type": "info|tip|warning", "title": "...", "message": "...", "action": "...", "confidence": 0.0-1.0}]}

Expenses:
%s`, string(recordJSON))

	text, err := c.callGemini(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var parsed geminiInsightResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parse insights response: %w (text: %s)", err, text[:min(len(text), 200)])
	}
	if len(parsed.Insights) == 0 {
		return nil, fmt.Errorf("empty insights response")
	}

	insights := make([]model.Insight, 0, len(parsed.Insights))
	for i, in := range parsed.Insights {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("insight-%d", i+1)
		}
		insights = append(insights, model.Insight{
			ID:         id,
			Kind:       mapInsightKind(in.Type),
			Title:      in.Title,
			Message:    in.Message,
			Action:     in.Action,
			Confidence: clampConfidence(in.Confidence),
		})
	}
	return insights, nil
}

// AnswerQuestion asks Gemini a free-form question about the given records and
// returns the prose answer.
func (c *GeminiClient) AnswerQuestion(ctx context.Context, question string, records []PromptRecord) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("Gemini API key not configured")
	}

	recordJSON, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}

	prompt := fmt.Sprintf(`You are a personal-finance assistant. Answer the user's question about their recent expenses in 2-3 friendly, concrete sentences. If the data does not support an answer, say so briefly.

Question: %s

Expenses:
%s`, question, string(recordJSON))

	text, err := c.callGemini(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("empty answer response")
	}
	return text, nil
}

// callGemini calls the Gemini API with a text prompt and returns the first
// candidate's text, with markdown code fences stripped.
func (c *GeminiClient) callGemini(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	url := fmt.Sprintf("%s/models/gemini-2.0-flash:generateContent?key=%s", c.baseURL, c.apiKey)

	generationConfig := map[string]interface{}{
		"temperature":     0.4,
		"maxOutputTokens": 1024,
	}
	if wantJSON {
		generationConfig["responseMimeType"] = "application/json"
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": generationConfig,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API error %d: %s", resp.StatusCode, string(respBody))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", fmt.Errorf("parse Gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty Gemini response")
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	// Strip markdown code fences if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text), nil
}

func mapInsightKind(t string) model.InsightKind {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "tip":
		return model.InsightTip
	case "warning":
		return model.InsightWarning
	default:
		return model.InsightInfo
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
