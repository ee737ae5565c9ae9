// services/ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"flexitrip-backend/utils"
)

// TextGenerator is the narrow interface the planner depends on, so
// tests can swap the real Gemini client for a fake.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	geminiEndpointTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	defaultGeminiModel     = "gemini-1.5-flash"

	// Advisory and generation calls share one request timeout; on
	// expiry the caller falls back instead of blocking.
	externalCallTimeout = 10 * time.Second
)

// GeminiClient talks to the Google generative language REST API.
type GeminiClient struct {
	apiKey string
	model  string
	http   *http.Client
}

// NewGeminiClient builds the client from the environment. A missing
// GEMINI_API_KEY is not fatal: every Generate call then fails fast and
// callers use their fallbacks.
func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		apiKey: strings.TrimSpace(utils.EnvOrDefault("GEMINI_API_KEY", "")),
		model:  utils.EnvOrDefault("GEMINI_MODEL", defaultGeminiModel),
		http:   &http.Client{Timeout: externalCallTimeout},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one prompt and returns the model's text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(geminiEndpointTemplate, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", parseGeminiError(resp)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", errors.New(parsed.Error.Message)
	}

	var sb strings.Builder
	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("model returned an empty response")
	}
	return text, nil
}

func parseGeminiError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}
	var payload geminiResponse
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != nil && payload.Error.Message != "" {
		return errors.New(payload.Error.Message)
	}
	return fmt.Errorf("gemini api error: %s", resp.Status)
}

// AIService wraps the text generator with travel-specific prompts,
// fallbacks and suggestion heuristics. Generation failures never reach
// the end user: they produce a sample plan or a canned chat reply.
type AIService struct {
	generator TextGenerator
}

func NewAIService(generator TextGenerator) *AIService {
	return &AIService{generator: generator}
}

// TripPlanRequest carries the user's planning form.
type TripPlanRequest struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Budget      float64  `json:"budget"`
	Interests   []string `json:"interests"`
	TravelStyle string   `json:"travel_style"`
	GroupSize   int      `json:"group_size"`
}

// TripPlanResponse is the structured planning result.
type TripPlanResponse struct {
	TripPlan      string   `json:"trip_plan"`
	EstimatedCost float64  `json:"estimated_cost"`
	Savings       float64  `json:"savings"`
	Confidence    float64  `json:"confidence"`
	Insights      []string `json:"insights"`
	Fallback      bool     `json:"fallback"`
}

// GenerateTripPlan asks the model for a full itinerary. On any
// generation failure it returns the static sample plan instead of an
// error.
func (a *AIService) GenerateTripPlan(ctx context.Context, req TripPlanRequest) *TripPlanResponse {
	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	prompt := fmt.Sprintf(`You are FlexiTrip, an expert travel planner for India.

Create a detailed trip plan:
- Destination: %s
- Duration: %d days
- Budget: ₹%.0f
- Group size: %d people
- Interests: %s
- Travel style: %s

Include a creative trip title, a day-by-day itinerary with costs, a
budget breakdown (accommodation, food, activities, transport, misc),
cultural insights and practical tips. Stay within the budget and match
activities to the stated interests.`,
		req.Destination, req.Duration, req.Budget, req.GroupSize, interests, req.TravelStyle)

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("warning: trip plan generation failed for %s: %v", req.Destination, err)
		return &TripPlanResponse{
			TripPlan: fmt.Sprintf(
				"Sample trip plan for %s: explore famous attractions, local food, and cultural spots over %d days.",
				req.Destination, req.Duration),
			EstimatedCost: req.Budget * 0.8,
			Savings:       req.Budget * 0.2,
			Confidence:    0.5,
			Insights: []string{
				"⚠️ AI service unavailable, showing sample trip",
				"🌍 Explore major attractions and food spots",
			},
			Fallback: true,
		}
	}

	return &TripPlanResponse{
		TripPlan:      text,
		EstimatedCost: req.Budget * 0.85,
		Savings:       req.Budget * 0.15,
		Confidence:    0.95,
		Insights: []string{
			fmt.Sprintf("🤖 AI analyzed 1000+ %s experiences", req.Destination),
			fmt.Sprintf("💰 Optimized your ₹%.0f budget efficiently", req.Budget),
			fmt.Sprintf("🎯 Matched to %s interests", interests),
		},
	}
}

// ChatResponse is one assistant reply plus follow-up suggestions.
type ChatResponse struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
	ContextUsed bool     `json:"context_used"`
	Fallback    bool     `json:"fallback"`
}

// Chat answers a free-form travel question, optionally aware of the
// trip the user is planning.
func (a *AIService) Chat(ctx context.Context, message string, tripContext *TripPlanRequest) *ChatResponse {
	var contextInfo string
	if tripContext != nil {
		contextInfo = fmt.Sprintf(`Current context:
- Planning trip to: %s
- Budget: ₹%.0f
- Duration: %d days
- Interests: %s
`, tripContext.Destination, tripContext.Budget, tripContext.Duration, strings.Join(tripContext.Interests, ", "))
	}

	prompt := fmt.Sprintf(`You are FlexiTrip, a friendly and knowledgeable travel expert.

%s
User asked: %q

Give specific, actionable travel advice. Share cultural insights when
relevant and stay mindful of the budget. Keep the reply engaging but
informative.`, contextInfo, message)

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("warning: chat generation failed: %v", err)
		return &ChatResponse{
			Response:    "I'm having trouble connecting right now. Please try again in a moment!",
			Suggestions: a.Suggestions(message, tripContext),
			ContextUsed: tripContext != nil,
			Fallback:    true,
		}
	}

	return &ChatResponse{
		Response:    text,
		Suggestions: a.Suggestions(message, tripContext),
		ContextUsed: tripContext != nil,
	}
}

// Suggestions derives follow-up prompts from the trip context or
// keywords in the user's message.
func (a *AIService) Suggestions(message string, tripContext *TripPlanRequest) []string {
	if tripContext != nil && tripContext.Destination != "" {
		d := tripContext.Destination
		return []string{
			fmt.Sprintf("Tell me more about %s culture", d),
			fmt.Sprintf("What's the best time to visit %s?", d),
			"Help me optimize my budget",
		}
	}

	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "budget", "money", "cost"):
		return []string{
			"How can I save money on accommodation?",
			"What are the hidden costs in travel?",
			"Budget-friendly food options?",
		}
	case containsAny(lower, "food", "eat", "restaurant"):
		return []string{
			"Best local dishes to try",
			"Street food safety tips",
			"Authentic dining experiences",
		}
	case containsAny(lower, "culture", "tradition", "local"):
		return []string{
			"Local festivals and events",
			"Cultural etiquette tips",
			"Traditional experiences to try",
		}
	}

	return []string{
		"Plan a trip for me",
		"Tell me about popular destinations",
		"What should I pack for my trip?",
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
