package model

// Data availability as classified at intent-extraction time.
const (
	DataAvailable    = "available"
	DataNotAvailable = "not_available"
)

// QueryIntent is the structured reading of one free-text query. It is built
// fresh per request by an extraction strategy, consumed by the filter
// compiler, and discarded after the response is generated.
type QueryIntent struct {
	DistrictName     string   `json:"district_name,omitempty"`
	SchoolName       string   `json:"school_name,omitempty"`
	Colors           []string `json:"colors,omitempty"`
	Indicators       []string `json:"indicators,omitempty"`
	StudentGroups    []string `json:"student_groups,omitempty"`
	DataAvailability string   `json:"data_availability"`
	Explanation      string   `json:"explanation,omitempty"`
}

// Available reports whether the requested data exists in the deployed
// indicator set.
func (q *QueryIntent) Available() bool {
	return q.DataAvailability != DataNotAvailable
}

// QueryAnswer is the engine's response to one query: the narrative plus the
// matched records, in store order.
type QueryAnswer struct {
	Response string          `json:"response"`
	Schools  []*SchoolRecord `json:"schools"`
}
