package query

import (
	"caschools/internal/model"
	"caschools/internal/registry"
)

// Compile turns a query intent into a predicate over school documents. Pure
// function, no I/O.
//
// Color filters OR together every requested indicator/group combination: a
// school matches when anything the user asked about shows one of the
// requested colors. District and school terms AND on top of that, scoping
// the search geographically. This asymmetry mirrors the dashboard's
// "show me anything concerning in X" reading of such queries.
func Compile(intent *model.QueryIntent, reg *registry.Registry) Predicate {
	if !intent.Available() {
		return MatchNone{}
	}

	var conds []Predicate
	if intent.DistrictName != "" {
		conds = append(conds, Regex{Path: FieldPath{"district_name"}, Pattern: intent.DistrictName})
	}
	if intent.SchoolName != "" {
		conds = append(conds, Regex{Path: FieldPath{"school_name"}, Pattern: intent.SchoolName})
	}

	if len(intent.Colors) > 0 {
		conds = append(conds, colorConditions(intent, reg))
	} else if len(intent.Indicators) > 0 {
		conds = append(conds, existsConditions(intent, reg))
	}

	switch len(conds) {
	case 0:
		return MatchAll{}
	case 1:
		return conds[0]
	default:
		return And{Preds: conds}
	}
}

// colorConditions builds status ∈ colors checks over the cross product of
// requested indicators and groups. Empty indicator sets expand to every
// deployed indicator available in the relevant scope; an empty group set
// means the school-wide aggregate.
func colorConditions(intent *model.QueryIntent, reg *registry.Registry) Predicate {
	var preds []Predicate
	if len(intent.StudentGroups) > 0 {
		indicators := intent.Indicators
		if len(indicators) == 0 {
			indicators = reg.Keys()
		}
		for _, group := range intent.StudentGroups {
			for _, ind := range indicators {
				preds = append(preds, In{
					Path:   GroupPath(group, ind, "status"),
					Values: intent.Colors,
				})
			}
		}
	} else {
		indicators := intent.Indicators
		if len(indicators) == 0 {
			indicators = reg.OverallKeys()
		}
		for _, ind := range indicators {
			preds = append(preds, In{
				Path:   OverallPath(ind, "status"),
				Values: intent.Colors,
			})
		}
	}
	return orOf(preds)
}

// existsConditions builds field-presence checks for indicator-only queries
// (no color requested). Group-only indicators asked about without a group
// are routed to their home group rather than the aggregate.
func existsConditions(intent *model.QueryIntent, reg *registry.Registry) Predicate {
	var preds []Predicate
	if len(intent.StudentGroups) > 0 {
		for _, group := range intent.StudentGroups {
			for _, ind := range intent.Indicators {
				preds = append(preds, Exists{Path: GroupPath(group, ind)})
			}
		}
	} else {
		for _, ind := range intent.Indicators {
			if meta, ok := reg.Lookup(ind); ok && meta.GroupsOnly {
				preds = append(preds, Exists{Path: GroupPath(registry.GroupEL, ind)})
				continue
			}
			preds = append(preds, Exists{Path: OverallPath(ind)})
		}
	}
	return orOf(preds)
}

func orOf(preds []Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return Or{Preds: preds}
}
