package registry

// GroupAll is the school-wide aggregate pseudo-group.
const GroupAll = "ALL"

// GroupEL is English Learners, the only group carrying the ELPI indicator.
const GroupEL = "EL"

// groupNames maps student-group short codes to display names.
var groupNames = map[string]string{
	"ALL":  "All Students",
	"AA":   "Black/African American",
	"AI":   "American Indian",
	"AS":   "Asian",
	"FI":   "Filipino",
	"HI":   "Hispanic/Latino",
	"PI":   "Pacific Islander",
	"WH":   "White",
	"MR":   "Two or More Races",
	"EL":   "English Learners",
	"LTEL": "Long-Term English Learners",
	"RFEP": "Reclassified Fluent English Proficient",
	"SED":  "Socioeconomically Disadvantaged",
	"SWD":  "Students with Disabilities",
	"HOM":  "Homeless",
	"FOS":  "Foster Youth",
}

// GroupName returns the display name for a student-group code, or the code
// itself when unknown.
func GroupName(code string) string {
	if name, ok := groupNames[code]; ok {
		return name
	}
	return code
}

// KnownGroup reports whether the code is a recognized student group.
func KnownGroup(code string) bool {
	_, ok := groupNames[code]
	return ok
}

var groupOrder = []string{
	"ALL", "AA", "AI", "AS", "EL", "FI", "FOS", "HI",
	"HOM", "LTEL", "MR", "PI", "RFEP", "SED", "SWD", "WH",
}

// GroupCodes returns every recognized student-group code in a stable order.
func GroupCodes() []string {
	return groupOrder
}

// GroupSynonym pairs a lowercase phrase with a student-group code. The
// pattern parser scans these in order and keeps every match.
type GroupSynonym struct {
	Phrase string
	Code   string
}

// Longer phrases come before their substrings so "long-term english
// learners" wins over "english learner".
var groupSynonyms = []GroupSynonym{
	{"long-term english learners", "LTEL"},
	{"long term english learners", "LTEL"},
	{"english learners", "EL"},
	{"english learner", "EL"},
	{"hispanic", "HI"},
	{"latino", "HI"},
	{"african american", "AA"},
	{"black", "AA"},
	{"asian", "AS"},
	{"white", "WH"},
	{"filipino", "FI"},
	{"pacific islander", "PI"},
	{"american indian", "AI"},
	{"two or more races", "MR"},
	{"socioeconomically disadvantaged", "SED"},
	{"low income", "SED"},
	{"students with disabilities", "SWD"},
	{"special education", "SWD"},
	{"homeless", "HOM"},
	{"foster", "FOS"},
	{"all students", "ALL"},
}

// GroupSynonyms returns the ordered synonym lexicon.
func GroupSynonyms() []GroupSynonym {
	return groupSynonyms
}
