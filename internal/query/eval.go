package query

import "strings"

// Eval interprets a predicate over a plain nested document map. It mirrors
// the subset of MongoDB matching the compiler emits ($regex as
// case-insensitive substring, $in, $exists, $and, $or) so predicates can be
// exercised against fixture documents without a store.
func Eval(p Predicate, doc map[string]interface{}) bool {
	switch p := p.(type) {
	case MatchAll:
		return true
	case MatchNone:
		return false
	case Regex:
		v, ok := resolve(doc, p.Path)
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(p.Pattern))
	case In:
		v, ok := resolve(doc, p.Path)
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, want := range p.Values {
			if s == want {
				return true
			}
		}
		return false
	case Exists:
		_, ok := resolve(doc, p.Path)
		return ok
	case And:
		for _, child := range p.Preds {
			if !Eval(child, doc) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range p.Preds {
			if Eval(child, doc) {
				return true
			}
		}
		return false
	}
	return false
}

// resolve walks a field path through nested maps.
func resolve(doc map[string]interface{}, path FieldPath) (interface{}, bool) {
	var cur interface{} = doc
	for _, seg := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
