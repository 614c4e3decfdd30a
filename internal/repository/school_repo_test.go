package repository

import (
	"caschools/internal/query"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToBSON_Regex(t *testing.T) {
	filter := ToBSON(query.Regex{Path: query.FieldPath{"district_name"}, Pattern: "sunnyvale"})
	assert.Equal(t, bson.M{"district_name": bson.M{"$regex": "sunnyvale", "$options": "i"}}, filter)
}

func TestToBSON_In(t *testing.T) {
	filter := ToBSON(query.In{
		Path:   query.GroupPath("EL", "math_performance", "status"),
		Values: []string{"Red", "Orange"},
	})
	assert.Equal(t, bson.M{"student_groups.EL.math_performance.status": bson.M{"$in": []string{"Red", "Orange"}}}, filter)
}

func TestToBSON_Exists(t *testing.T) {
	filter := ToBSON(query.Exists{Path: query.OverallPath("chronic_absenteeism")})
	assert.Equal(t, bson.M{"dashboard_indicators.chronic_absenteeism": bson.M{"$exists": true}}, filter)
}

func TestToBSON_AndOrNesting(t *testing.T) {
	pred := query.And{Preds: []query.Predicate{
		query.Regex{Path: query.FieldPath{"district_name"}, Pattern: "oakland"},
		query.Or{Preds: []query.Predicate{
			query.In{Path: query.OverallPath("ela_performance", "status"), Values: []string{"Red"}},
			query.In{Path: query.OverallPath("math_performance", "status"), Values: []string{"Red"}},
		}},
	}}

	filter := ToBSON(pred)

	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)
	assert.Equal(t, bson.M{"district_name": bson.M{"$regex": "oakland", "$options": "i"}}, and[0])

	or, ok := and[1]["$or"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, or, 2)
}

func TestToBSON_MatchAllAndNone(t *testing.T) {
	assert.Equal(t, bson.M{}, ToBSON(query.MatchAll{}))
	assert.Equal(t, bson.M{"$nor": []bson.M{{}}}, ToBSON(query.MatchNone{}))
}
