package registry

import "strings"

// Indicator keys as stored in the school documents.
const (
	ChronicAbsenteeism     = "chronic_absenteeism"
	ELAPerformance         = "ela_performance"
	MathPerformance        = "math_performance"
	SuspensionRate         = "suspension_rate"
	CollegeCareer          = "college_career"
	GraduationRate         = "graduation_rate"
	EnglishLearnerProgress = "english_learner_progress"
)

// Value semantics of an indicator.
const (
	ValueRate                 = "rate"
	ValueDistanceFromStandard = "distance_from_standard"
)

// Good direction of an indicator.
const (
	HigherIsBetter = "higher_is_better"
	LowerIsBetter  = "lower_is_better"
)

// Indicator is the static metadata for one dashboard indicator. GroupsOnly
// marks indicators reported only under a student group (ELPI lives under the
// EL group, never in the school-wide aggregate).
type Indicator struct {
	Key           string
	Label         string
	Description   string
	ValueKind     string
	GoodDirection string
	ValueField    string // document field holding the value
	GroupsOnly    bool
	Synonyms      []string // lowercase phrases for the pattern parser
}

var allIndicators = []Indicator{
	{
		Key:           ChronicAbsenteeism,
		Label:         "Chronic Absenteeism",
		Description:   "Percentage of students absent 10%+ of school days",
		ValueKind:     ValueRate,
		GoodDirection: LowerIsBetter,
		ValueField:    "rate",
		Synonyms:      []string{"chronic", "absenteeism", "attendance", "absent"},
	},
	{
		Key:           ELAPerformance,
		Label:         "ELA",
		Description:   "ELA test scores, distance from standard (negative = below, positive = above)",
		ValueKind:     ValueDistanceFromStandard,
		GoodDirection: HigherIsBetter,
		ValueField:    "points_below_standard",
		Synonyms:      []string{"ela", "english language arts", "reading", "literacy"},
	},
	{
		Key:           MathPerformance,
		Label:         "Math",
		Description:   "Math test scores, distance from standard (negative = below, positive = above)",
		ValueKind:     ValueDistanceFromStandard,
		GoodDirection: HigherIsBetter,
		ValueField:    "points_below_standard",
		Synonyms:      []string{"math", "mathematics", "arithmetic"},
	},
	{
		Key:           SuspensionRate,
		Label:         "Suspension Rate",
		Description:   "Percentage of students suspended",
		ValueKind:     ValueRate,
		GoodDirection: LowerIsBetter,
		ValueField:    "rate",
		Synonyms:      []string{"suspension", "suspended", "discipline"},
	},
	{
		Key:           CollegeCareer,
		Label:         "College/Career Ready",
		Description:   "Percentage of students prepared for college or career (CCI)",
		ValueKind:     ValueRate,
		GoodDirection: HigherIsBetter,
		ValueField:    "rate",
		Synonyms:      []string{"college", "career", "cci", "prepared"},
	},
	{
		Key:           GraduationRate,
		Label:         "Graduation Rate",
		Description:   "Percentage of students graduating",
		ValueKind:     ValueRate,
		GoodDirection: HigherIsBetter,
		ValueField:    "rate",
		Synonyms:      []string{"graduation", "graduate", "graduating"},
	},
	{
		Key:           EnglishLearnerProgress,
		Label:         "English Learner Progress",
		Description:   "English Learner Progress Indicator (ELPI)",
		ValueKind:     ValueRate,
		GoodDirection: HigherIsBetter,
		ValueField:    "rate",
		GroupsOnly:    true,
		Synonyms:      []string{"english learner progress", "elpi", "elpac", "el progress"},
	},
}

// Registry is the deployed set of indicators. Loaded once at startup and
// shared read-only by the extractor strategies, the filter compiler and the
// explainer. A deployment may carry fewer than the full seven; anything
// outside the set is answered as "not available".
type Registry struct {
	order []Indicator
	byKey map[string]Indicator
}

// Catalog returns the full indicator catalog regardless of deployment. The
// pattern parser scans all of it so that mentions of undeployed indicators
// are recognized and answered as "not available" instead of being ignored.
func Catalog() []Indicator {
	return allIndicators
}

// Default returns a registry with all seven indicators.
func Default() *Registry {
	return newRegistry(allIndicators)
}

// Subset returns a registry restricted to the given keys, preserving
// canonical order. Unknown keys are ignored.
func Subset(keys ...string) *Registry {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[strings.TrimSpace(strings.ToLower(k))] = true
	}
	var inds []Indicator
	for _, ind := range allIndicators {
		if want[ind.Key] {
			inds = append(inds, ind)
		}
	}
	return newRegistry(inds)
}

func newRegistry(inds []Indicator) *Registry {
	r := &Registry{byKey: make(map[string]Indicator, len(inds))}
	for _, ind := range inds {
		r.order = append(r.order, ind)
		r.byKey[ind.Key] = ind
	}
	return r
}

// Lookup returns the indicator for a key.
func (r *Registry) Lookup(key string) (Indicator, bool) {
	ind, ok := r.byKey[key]
	return ind, ok
}

// Has reports whether the key is deployed.
func (r *Registry) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Indicators returns the deployed indicators in canonical order.
func (r *Registry) Indicators() []Indicator {
	return r.order
}

// Keys returns the deployed indicator keys in canonical order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.order))
	for _, ind := range r.order {
		keys = append(keys, ind.Key)
	}
	return keys
}

// OverallKeys returns the keys reported in the school-wide aggregate,
// excluding group-only indicators.
func (r *Registry) OverallKeys() []string {
	keys := make([]string, 0, len(r.order))
	for _, ind := range r.order {
		if !ind.GroupsOnly {
			keys = append(keys, ind.Key)
		}
	}
	return keys
}

// LabelList returns a comma-separated list of deployed indicator labels, for
// "data not available" messages.
func (r *Registry) LabelList() string {
	labels := make([]string, 0, len(r.order))
	for _, ind := range r.order {
		labels = append(labels, ind.Label)
	}
	return strings.Join(labels, ", ")
}

// Label returns the display label for a key, falling back to a title-cased
// form of the key itself.
func (r *Registry) Label(key string) string {
	if ind, ok := r.byKey[key]; ok {
		return ind.Label
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
