package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	applications := db.Collection("applications")
	_, err := applications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "application_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_application_id").
				SetUnique(true),
		},
		// Scatter-gather predicates for both parties
		{
			Keys:    bson.D{{Key: "applicant.user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_applicant_created"),
		},
		{
			Keys:    bson.D{{Key: "employer.user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_employer_created"),
		},
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}},
			Options: options.Index().SetName("by_job"),
		},
	})
	return err
}
