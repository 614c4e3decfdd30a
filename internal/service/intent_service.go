package service

import (
	"caschools/internal/config"
	"caschools/internal/model"
	"caschools/internal/registry"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// IntentStrategy is one way of reading a free-text query. TryExtract returns
// nil with no error when the strategy declines (e.g. AI not configured); an
// error means it tried and failed. Either way the caller moves on to the
// next strategy.
type IntentStrategy interface {
	TryExtract(ctx context.Context, text string) (*model.QueryIntent, error)
}

// IntentService runs extraction strategies in priority order and returns the
// first intent produced. With the pattern parser last, Extract never fails.
type IntentService struct {
	strategies []IntentStrategy
}

// NewIntentService creates an intent service trying strategies in order
func NewIntentService(strategies ...IntentStrategy) *IntentService {
	return &IntentService{strategies: strategies}
}

// Extract produces a query intent for the text. Strategy failures are logged
// and recovered by falling through; they never reach the caller.
func (s *IntentService) Extract(ctx context.Context, text string) *model.QueryIntent {
	for _, strat := range s.strategies {
		intent, err := strat.TryExtract(ctx, text)
		if err != nil {
			log.Printf("intent strategy failed, falling back: %v", err)
			continue
		}
		if intent != nil {
			return intent
		}
	}
	return &model.QueryIntent{DataAvailability: model.DataAvailable}
}

// GeminiIntentStrategy delegates query understanding to Gemini. The prompt
// enumerates exactly the deployed indicators, group codes and colors; that
// enumeration is the contract keeping the model from inventing fields.
type GeminiIntentStrategy struct {
	config *config.AIConfig
	ai     Completer
	reg    *registry.Registry
}

// NewGeminiIntentStrategy creates the AI-backed extraction strategy
func NewGeminiIntentStrategy(cfg *config.AIConfig, ai Completer, reg *registry.Registry) *GeminiIntentStrategy {
	return &GeminiIntentStrategy{config: cfg, ai: ai, reg: reg}
}

func (s *GeminiIntentStrategy) TryExtract(ctx context.Context, text string) (*model.QueryIntent, error) {
	if s.ai == nil || !s.config.IsEnabled() {
		return nil, nil
	}

	reply, err := s.ai.Complete(ctx, s.config.Models.Intent, s.buildIntentPrompt(text))
	if err != nil {
		return nil, err
	}

	raw := extractJSON(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in reply: %.120s", reply)
	}

	var intent model.QueryIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, fmt.Errorf("parse intent reply: %w", err)
	}

	s.sanitize(&intent)
	return &intent, nil
}

// sanitize keeps the model's reply inside the deployed vocabulary: colors
// are normalized, unknown group codes dropped, and any indicator outside the
// registry flips the intent to not-available.
func (s *GeminiIntentStrategy) sanitize(intent *model.QueryIntent) {
	if intent.DataAvailability == "" {
		intent.DataAvailability = model.DataAvailable
	}

	var colors []string
	for _, c := range intent.Colors {
		c = normalizeColor(c)
		for _, level := range model.StatusLevels {
			if c == level {
				colors = append(colors, c)
				break
			}
		}
	}
	intent.Colors = colors

	var groups []string
	for _, g := range intent.StudentGroups {
		g = strings.ToUpper(strings.TrimSpace(g))
		if registry.KnownGroup(g) {
			groups = append(groups, g)
		}
	}
	intent.StudentGroups = groups

	var indicators []string
	for _, ind := range intent.Indicators {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if s.reg.Has(ind) {
			indicators = append(indicators, ind)
			continue
		}
		intent.DataAvailability = model.DataNotAvailable
		if intent.Explanation == "" {
			intent.Explanation = fmt.Sprintf("%s data is not in the current dataset. Available indicators: %s.",
				s.reg.Label(ind), s.reg.LabelList())
		}
	}
	intent.Indicators = indicators
}

func (s *GeminiIntentStrategy) buildIntentPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are an expert in California School Dashboard data analysis. Parse the user's natural language query and extract structured information.\n\n")

	b.WriteString("AVAILABLE DATA INDICATORS:\n")
	for i, ind := range s.reg.Indicators() {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, ind.Key, ind.Description)
	}

	b.WriteString("\nAVAILABLE STUDENT GROUPS:\n")
	for _, code := range registry.GroupCodes() {
		fmt.Fprintf(&b, "- %s (%s)\n", code, registry.GroupName(code))
	}

	b.WriteString(`
PERFORMANCE LEVELS (Colors):
- Red = Lowest performance (most concerning)
- Orange = Below average performance
- Yellow = Average performance
- Green = Above average performance
- Blue = Highest performance (best)

IMPORTANT: If the user asks about any indicator NOT in the list above, set data_availability to "not_available" and explain what data is available instead.

Parse this query and return ONLY a JSON object with this exact structure:
{
    "district_name": "search term for district (e.g. 'sunnyvale' for flexible matching), or null",
    "school_name": "school name if mentioned, or null",
    "colors": ["Red", "Orange"],
    "indicators": ["chronic_absenteeism"],
    "student_groups": ["HI", "EL"],
    "data_availability": "available" or "not_available",
    "explanation": "brief explanation of what data is available vs requested"
}

Query: `)
	b.WriteString(text)
	return b.String()
}

// normalizeColor maps "red", "RED" etc. to the stored "Red" spelling.
func normalizeColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return ""
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

// extractJSON pulls the outermost {...} span out of an AI reply, tolerating
// prose or markdown fences around it.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}
