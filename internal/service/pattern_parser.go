package service

import (
	"caschools/internal/model"
	"caschools/internal/registry"
	"context"
	"fmt"
	"strings"
)

// districtLexicon maps lowercase phrases to district search terms. Scanned
// in order with first match winning, so entries that are substrings of other
// entries must come after them.
var districtLexicon = []struct {
	Phrase string
	Term   string
}{
	{"sunnyvale", "sunnyvale"},
	{"san francisco", "san francisco"},
	{"los angeles", "los angeles"},
	{"oakland", "oakland"},
	{"san diego", "san diego"},
	{"alameda", "alameda"},
	{"fresno", "fresno"},
	{"sacramento", "sacramento"},
}

// Color defaulting cues, used only when the query names no explicit color.
var (
	problemPhrases = []string{"lowest", "worst", "struggling", "problem", "concerning"}
	successPhrases = []string{"best", "excellent", "highest performing", "top performing", "thriving"}
)

// PatternParser is the deterministic fallback extraction strategy: ordered
// keyword matching against the district, student-group and indicator
// lexicons. It always produces an intent and never errors.
type PatternParser struct {
	reg *registry.Registry
}

// NewPatternParser creates the rule-based extraction strategy
func NewPatternParser(reg *registry.Registry) *PatternParser {
	return &PatternParser{reg: reg}
}

func (p *PatternParser) TryExtract(ctx context.Context, text string) (*model.QueryIntent, error) {
	lower := strings.ToLower(text)

	intent := &model.QueryIntent{
		DataAvailability: model.DataAvailable,
		Explanation:      "Using pattern matching for query analysis",
	}

	// District: first lexicon match wins.
	for _, d := range districtLexicon {
		if strings.Contains(lower, d.Phrase) {
			intent.DistrictName = d.Term
			break
		}
	}

	// Student groups: collect every match, a query may name several.
	for _, syn := range registry.GroupSynonyms() {
		if strings.Contains(lower, syn.Phrase) && !contains(intent.StudentGroups, syn.Code) {
			intent.StudentGroups = append(intent.StudentGroups, syn.Code)
		}
	}

	// Indicators: scan the full catalog so undeployed indicators are
	// detected rather than silently dropped.
	for _, ind := range registry.Catalog() {
		if !matchesAny(lower, ind.Synonyms) {
			continue
		}
		if !p.reg.Has(ind.Key) {
			intent.DataAvailability = model.DataNotAvailable
			intent.Explanation = fmt.Sprintf("%s data is not in the current dataset. Available indicators: %s.",
				ind.Label, p.reg.LabelList())
			continue
		}
		if !contains(intent.Indicators, ind.Key) {
			intent.Indicators = append(intent.Indicators, ind.Key)
		}
	}

	// Explicit colors.
	for _, level := range model.StatusLevels {
		if strings.Contains(lower, strings.ToLower(level)) {
			intent.Colors = append(intent.Colors, level)
		}
	}

	// Context-based color defaulting, only when no explicit color was given.
	if len(intent.Colors) == 0 {
		if matchesAny(lower, problemPhrases) {
			intent.Colors = []string{model.StatusRed, model.StatusOrange}
		} else if matchesAny(lower, successPhrases) {
			intent.Colors = []string{model.StatusGreen, model.StatusBlue}
		}
	}

	return intent, nil
}

func matchesAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
