package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Status levels assigned by the state dashboard, worst to best.
const (
	StatusRed    = "Red"
	StatusOrange = "Orange"
	StatusYellow = "Yellow"
	StatusGreen  = "Green"
	StatusBlue   = "Blue"
	StatusNoData = "No Data"
)

// StatusLevels lists the five real performance colors in order.
var StatusLevels = []string{StatusRed, StatusOrange, StatusYellow, StatusGreen, StatusBlue}

// IndicatorResult is one metric observation for a school. The value lives in
// either Rate (percentage indicators) or PointsFromStandard (ELA/math distance
// from standard), matching how the source documents store it.
type IndicatorResult struct {
	Status             string   `json:"status" bson:"status"`
	Rate               *float64 `json:"rate,omitempty" bson:"rate,omitempty"`
	PointsFromStandard *float64 `json:"points_below_standard,omitempty" bson:"points_below_standard,omitempty"`
	Change             float64  `json:"change,omitempty" bson:"change,omitempty"`
}

// Value returns whichever value field is populated.
func (r IndicatorResult) Value() float64 {
	if r.Rate != nil {
		return *r.Rate
	}
	if r.PointsFromStandard != nil {
		return *r.PointsFromStandard
	}
	return 0
}

// HasStatus reports whether the observation carries a real color.
func (r IndicatorResult) HasStatus() bool {
	return r.Status != "" && r.Status != StatusNoData
}

// SchoolRecord is one school-year document. DashboardIndicators is the
// ALL-students aggregate; StudentGroups holds the same indicators broken out
// per group code. The ALL entry of StudentGroups, when present, is a
// denormalized copy of DashboardIndicators.
type SchoolRecord struct {
	ID                  primitive.ObjectID                    `json:"_id,omitempty" bson:"_id,omitempty"`
	DistrictName        string                                `json:"district_name" bson:"district_name"`
	SchoolName          string                                `json:"school_name" bson:"school_name"`
	Year                int                                   `json:"year,omitempty" bson:"year,omitempty"`
	DashboardIndicators map[string]IndicatorResult            `json:"dashboard_indicators,omitempty" bson:"dashboard_indicators,omitempty"`
	StudentGroups       map[string]map[string]IndicatorResult `json:"student_groups,omitempty" bson:"student_groups,omitempty"`
}

// GroupIndicators returns the indicator map for a group code, with ALL
// resolving to the dashboard aggregate.
func (s *SchoolRecord) GroupIndicators(code string) map[string]IndicatorResult {
	if code == "" || code == "ALL" {
		return s.DashboardIndicators
	}
	return s.StudentGroups[code]
}
