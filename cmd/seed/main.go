package main

import (
	"caschools/internal/config"
	"caschools/internal/model"
	"caschools/internal/repository"
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func f(v float64) *float64 { return &v }

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewSchoolRepo(client.Database(cfg.MongoDB))

	schools := []*model.SchoolRecord{
		{
			DistrictName: "Sunnyvale Elementary",
			SchoolName:   "Bishop Elementary",
			Year:         2024,
			DashboardIndicators: map[string]model.IndicatorResult{
				"chronic_absenteeism": {Status: model.StatusOrange, Rate: f(18.2), Change: 2.1},
				"ela_performance":     {Status: model.StatusYellow, PointsFromStandard: f(-12.4), Change: 3.0},
				"math_performance":    {Status: model.StatusRed, PointsFromStandard: f(-48.7), Change: -5.2},
				"suspension_rate":     {Status: model.StatusGreen, Rate: f(1.1), Change: -0.3},
			},
			StudentGroups: map[string]map[string]model.IndicatorResult{
				"EL": {
					"math_performance":         {Status: model.StatusRed, PointsFromStandard: f(-71.3), Change: -2.8},
					"english_learner_progress": {Status: model.StatusYellow, Rate: f(48.5), Change: 1.9},
				},
				"SED": {
					"chronic_absenteeism": {Status: model.StatusRed, Rate: f(24.6), Change: 4.0},
				},
			},
		},
		{
			DistrictName: "Sunnyvale Elementary",
			SchoolName:   "Cherry Chase Elementary",
			Year:         2024,
			DashboardIndicators: map[string]model.IndicatorResult{
				"chronic_absenteeism": {Status: model.StatusGreen, Rate: f(7.4), Change: -1.2},
				"ela_performance":     {Status: model.StatusBlue, PointsFromStandard: f(42.1), Change: 4.6},
				"math_performance":    {Status: model.StatusGreen, PointsFromStandard: f(28.9), Change: 2.2},
			},
		},
		{
			DistrictName: "Oakland Unified",
			SchoolName:   "Fruitvale Elementary",
			Year:         2024,
			DashboardIndicators: map[string]model.IndicatorResult{
				"chronic_absenteeism": {Status: model.StatusRed, Rate: f(31.5), Change: 3.8},
				"ela_performance":     {Status: model.StatusOrange, PointsFromStandard: f(-33.0), Change: -1.1},
				"math_performance":    {Status: model.StatusOrange, PointsFromStandard: f(-55.2)},
				"graduation_rate":     {Status: model.StatusYellow, Rate: f(84.3), Change: 0.9},
			},
			StudentGroups: map[string]map[string]model.IndicatorResult{
				"EL": {
					"chronic_absenteeism":      {Status: model.StatusRed, Rate: f(35.0), Change: 5.5},
					"english_learner_progress": {Status: model.StatusOrange, Rate: f(39.2), Change: -2.4},
				},
			},
		},
		{
			DistrictName: "San Francisco Unified",
			SchoolName:   "Mission High",
			Year:         2024,
			DashboardIndicators: map[string]model.IndicatorResult{
				"ela_performance":  {Status: model.StatusGreen, PointsFromStandard: f(15.8), Change: 2.0},
				"math_performance": {Status: model.StatusYellow, PointsFromStandard: f(-8.3), Change: 6.1},
				"college_career":   {Status: model.StatusGreen, Rate: f(61.7), Change: 3.4},
				"graduation_rate":  {Status: model.StatusBlue, Rate: f(95.2), Change: 1.3},
			},
		},
	}

	if err := repo.Insert(ctx, schools); err != nil {
		log.Fatalf("Failed to seed schools: %v", err)
	}
	log.Printf("Seeded %d school records", len(schools))
}
