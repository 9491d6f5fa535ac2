package testtypes

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

type TestTypeMongoRepository struct {
	Collection *mongo.Collection
}

func NewTestTypeMongoRepository(db *mongo.Client, dbName string) contracts.TestTypeRepository {
	return &TestTypeMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTestTypes),
	}
}

func (r *TestTypeMongoRepository) FindByID(ctx context.Context, testTypeID string) (*models.TestType, error) {
	objectID, err := primitive.ObjectIDFromHex(testTypeID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var testType models.TestType
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&testType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &testType, nil
}

func (r *TestTypeMongoRepository) FindByCode(ctx context.Context, code string) (*models.TestType, error) {
	var testType models.TestType
	err := r.Collection.FindOne(ctx, bson.M{"code": code}).Decode(&testType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &testType, nil
}
