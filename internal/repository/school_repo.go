package repository

import (
	"caschools/internal/model"
	"caschools/internal/query"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxResults caps how many schools a single query may return.
const MaxResults = 50

// SchoolRepo handles MongoDB operations for school records
type SchoolRepo interface {
	Search(ctx context.Context, pred query.Predicate, limit int64) ([]*model.SchoolRecord, error)
	Insert(ctx context.Context, records []*model.SchoolRecord) error
}

type schoolRepo struct {
	collection *mongo.Collection
}

// NewSchoolRepo creates a new school repository
func NewSchoolRepo(db *mongo.Database) SchoolRepo {
	return &schoolRepo{
		collection: db.Collection("schools"),
	}
}

func (r *schoolRepo) Search(ctx context.Context, pred query.Predicate, limit int64) ([]*model.SchoolRecord, error) {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "district_name", Value: 1}, {Key: "school_name", Value: 1}})

	cursor, err := r.collection.Find(ctx, ToBSON(pred), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schools []*model.SchoolRecord
	if err := cursor.All(ctx, &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *schoolRepo) Insert(ctx context.Context, records []*model.SchoolRecord) error {
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// ToBSON interprets a compiled predicate into a MongoDB filter.
func ToBSON(pred query.Predicate) bson.M {
	switch p := pred.(type) {
	case query.MatchAll:
		return bson.M{}
	case query.MatchNone:
		// $nor of an empty filter matches no document.
		return bson.M{"$nor": []bson.M{{}}}
	case query.Regex:
		return bson.M{p.Path.String(): bson.M{"$regex": p.Pattern, "$options": "i"}}
	case query.In:
		return bson.M{p.Path.String(): bson.M{"$in": p.Values}}
	case query.Exists:
		return bson.M{p.Path.String(): bson.M{"$exists": true}}
	case query.And:
		children := make([]bson.M, 0, len(p.Preds))
		for _, child := range p.Preds {
			children = append(children, ToBSON(child))
		}
		return bson.M{"$and": children}
	case query.Or:
		children := make([]bson.M, 0, len(p.Preds))
		for _, child := range p.Preds {
			children = append(children, ToBSON(child))
		}
		return bson.M{"$or": children}
	}
	return bson.M{}
}
