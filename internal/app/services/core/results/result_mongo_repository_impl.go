package results

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResultMongoRepository struct {
	Collection *mongo.Collection
}

func NewResultMongoRepository(db *mongo.Client, dbName string) contracts.ResultRepository {
	return &ResultMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionResults),
	}
}

func (r *ResultMongoRepository) CreateResult(ctx context.Context, result *models.Result) (string, error) {
	insertResult, err := r.Collection.InsertOne(ctx, result)
	if err != nil {
		// The unique index on assignmentId backs the one-result-per-assignment
		// invariant even when two submits race past the existence check.
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrResultAlreadyExists(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return insertResult.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ResultMongoRepository) FindByAssignmentID(ctx context.Context, assignmentID string) (*models.Result, error) {
	var result models.Result
	err := r.Collection.FindOne(ctx, bson.M{"assignmentId": assignmentID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &result, nil
}
