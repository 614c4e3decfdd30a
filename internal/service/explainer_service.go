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

const (
	// maxAINarrativeResults is the largest result set handed to the AI
	// summarizer; bigger sets always use the deterministic summary.
	maxAINarrativeResults = 10

	// maxNarrativeRecords caps how many records get serialized into the
	// narrative prompt, bounding its size.
	maxNarrativeRecords = 5
)

// ExplainerService turns a result set and the intent behind it into a
// natural-language report. AI narration is attempted for small result sets;
// every path has a deterministic fallback.
type ExplainerService struct {
	config *config.AIConfig
	ai     Completer
	reg    *registry.Registry
}

// NewExplainerService creates a new explainer service
func NewExplainerService(cfg *config.AIConfig, ai Completer, reg *registry.Registry) *ExplainerService {
	return &ExplainerService{config: cfg, ai: ai, reg: reg}
}

// Explain renders the answer narrative for a query.
func (s *ExplainerService) Explain(ctx context.Context, userQuery string, results []*model.SchoolRecord, intent *model.QueryIntent) string {
	if !intent.Available() {
		return s.notAvailableMessage(intent)
	}

	if len(results) == 0 {
		return "I found no schools matching your criteria. Try adjusting your search terms."
	}

	if len(results) == 1 {
		return s.singleSchool(results[0], intent)
	}

	if len(results) <= maxAINarrativeResults && s.ai != nil && s.config.IsEnabled() {
		narrative, err := s.aiNarrative(ctx, userQuery, results, intent)
		if err != nil {
			log.Printf("AI narrative failed, using template: %v", err)
		} else if narrative != "" {
			return narrative
		}
	}

	return s.summarize(results)
}

func (s *ExplainerService) notAvailableMessage(intent *model.QueryIntent) string {
	explanation := intent.Explanation
	if explanation == "" {
		explanation = "The requested data is not in the current dataset."
	}
	return fmt.Sprintf("**Data Not Available**: %s\n\n**Available Data**: I can help you analyze %s across all student groups.",
		explanation, s.reg.LabelList())
}

// singleSchool renders a per-indicator breakdown for each requested student
// group, or the school-wide aggregate when no group was named.
func (s *ExplainerService) singleSchool(school *model.SchoolRecord, intent *model.QueryIntent) string {
	groups := intent.StudentGroups
	if len(groups) == 0 {
		groups = []string{registry.GroupAll}
	}

	parts := []string{fmt.Sprintf("**%s** (%s)", school.SchoolName, school.DistrictName)}

	for _, group := range groups {
		indicators := school.GroupIndicators(group)
		if len(indicators) == 0 {
			continue
		}

		var lines []string
		for _, ind := range s.reg.Indicators() {
			res, ok := indicators[ind.Key]
			if !ok || !res.HasStatus() {
				continue
			}
			lines = append(lines, fmt.Sprintf("• %s: **%s** (%s)", ind.Label, res.Status, s.describeResult(ind, res)))
		}
		if len(lines) == 0 {
			continue
		}

		header := "**Overall Performance:**"
		if group != registry.GroupAll {
			header = fmt.Sprintf("**%s:**", registry.GroupName(group))
		}
		parts = append(parts, "\n"+header)
		parts = append(parts, lines...)
	}

	return strings.Join(parts, "\n")
}

// describeResult phrases one observation using the indicator's sign
// conventions. Direction of "better" is intrinsic to the indicator, never
// inferred from the stored status.
func (s *ExplainerService) describeResult(ind registry.Indicator, res model.IndicatorResult) string {
	desc := describeValue(ind, res.Value())
	if change := describeChange(ind, res.Change); change != "" {
		desc += ", " + change
	}
	return desc
}

func describeValue(ind registry.Indicator, value float64) string {
	if ind.ValueKind == registry.ValueDistanceFromStandard {
		direction := "above"
		if value < 0 {
			direction = "below"
			value = -value
		}
		return fmt.Sprintf("%.1f points %s standard", value, direction)
	}
	return fmt.Sprintf("%.1f%%", value)
}

func describeChange(ind registry.Indicator, change float64) string {
	if change == 0 {
		return ""
	}

	improved := change > 0
	if ind.GoodDirection == registry.LowerIsBetter {
		improved = change < 0
	}
	verb := "worsened"
	if improved {
		verb = "improved"
	}

	unit := "%"
	if ind.ValueKind == registry.ValueDistanceFromStandard {
		unit = " points"
	}
	amount := change
	if amount < 0 {
		amount = -amount
	}
	return fmt.Sprintf("%s by %.1f%s", verb, amount, unit)
}

// summarize is the deterministic multi-school report: count Red/Orange
// observations per indicator, or fall back to a flat color distribution when
// nothing is concerning.
func (s *ExplainerService) summarize(results []*model.SchoolRecord) string {
	concernCounts := make(map[string]int)
	totalConcerns := 0
	for _, school := range results {
		for key, res := range school.DashboardIndicators {
			if res.Status == model.StatusRed || res.Status == model.StatusOrange {
				concernCounts[key]++
				totalConcerns++
			}
		}
	}

	if totalConcerns > 0 {
		parts := []string{fmt.Sprintf("**Found %d schools.** Areas needing attention:", len(results))}
		for _, ind := range s.reg.Indicators() {
			if n := concernCounts[ind.Key]; n > 0 {
				noun := "schools"
				if n == 1 {
					noun = "school"
				}
				parts = append(parts, fmt.Sprintf("• %s: %d %s in Red or Orange", ind.Label, n, noun))
			}
		}
		return strings.Join(parts, "\n")
	}

	statusCounts := make(map[string]int)
	for _, school := range results {
		for _, res := range school.DashboardIndicators {
			if res.HasStatus() {
				statusCounts[res.Status]++
			}
		}
	}

	parts := []string{fmt.Sprintf("**Found %d schools.** Performance color distribution:", len(results))}
	for _, level := range model.StatusLevels {
		if n := statusCounts[level]; n > 0 {
			parts = append(parts, fmt.Sprintf("• %s: %d indicators", level, n))
		}
	}
	return strings.Join(parts, "\n")
}

// narrativeRecord is the capped per-school summary serialized into the
// narrative prompt.
type narrativeRecord struct {
	SchoolName    string                                      `json:"school_name"`
	DistrictName  string                                      `json:"district_name"`
	Overall       map[string]model.IndicatorResult            `json:"overall_performance,omitempty"`
	StudentGroups map[string]map[string]model.IndicatorResult `json:"student_groups,omitempty"`
}

func (s *ExplainerService) aiNarrative(ctx context.Context, userQuery string, results []*model.SchoolRecord, intent *model.QueryIntent) (string, error) {
	narrative, err := s.ai.Complete(ctx, s.config.Models.Narrative, s.buildNarrativePrompt(userQuery, results, intent))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(narrative), nil
}

func (s *ExplainerService) buildNarrativePrompt(userQuery string, results []*model.SchoolRecord, intent *model.QueryIntent) string {
	targetGroups := intent.StudentGroups
	if len(targetGroups) == 0 {
		targetGroups = []string{registry.GroupAll}
	}

	records := make([]narrativeRecord, 0, maxNarrativeRecords)
	for _, school := range results {
		if len(records) == maxNarrativeRecords {
			break
		}
		rec := narrativeRecord{
			SchoolName:   school.SchoolName,
			DistrictName: school.DistrictName,
			Overall:      school.DashboardIndicators,
		}
		for _, group := range targetGroups {
			if group == registry.GroupAll {
				continue
			}
			if data, ok := school.StudentGroups[group]; ok {
				if rec.StudentGroups == nil {
					rec.StudentGroups = make(map[string]map[string]model.IndicatorResult)
				}
				rec.StudentGroups[group] = data
			}
		}
		records = append(records, rec)
	}
	data, _ := json.MarshalIndent(records, "", "  ")

	var legend strings.Builder
	for _, ind := range s.reg.Indicators() {
		direction := "higher is better"
		if ind.GoodDirection == registry.LowerIsBetter {
			direction = "lower is better"
		}
		fmt.Fprintf(&legend, "- %s: %s (%s)\n", ind.Key, ind.Description, direction)
	}

	return fmt.Sprintf(`You are a California School Dashboard data analyst. Provide a CONCISE, FACT-BASED analysis with NO implementation suggestions.

USER QUERY: %s
SCHOOL DATA: %s

DATA CONTEXT:
%s- Performance levels: Red (worst) → Orange → Yellow → Green → Blue (best)

RESPONSE REQUIREMENTS:
1. Start with a clear summary sentence
2. Present key findings as concise bullet points
3. Include specific data values and school names
4. Focus ONLY on data analysis and patterns
5. NO suggestions for actions or interventions
6. Keep total response under 200 words
7. Use clear formatting with headers and bullets

Format your response with proper markdown formatting but be concise and factual only.`,
		userQuery, string(data), legend.String())
}
