package access

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AccessRecordMongoRepository only ever inserts and reads; the access ledger
// is append-only by construction.
type AccessRecordMongoRepository struct {
	Collection *mongo.Collection
}

func NewAccessRecordMongoRepository(db *mongo.Client, dbName string) contracts.AccessRecordRepository {
	return &AccessRecordMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAccessRecords),
	}
}

func (r *AccessRecordMongoRepository) CreateAccessRecord(ctx context.Context, record *models.AccessRecord) (string, error) {
	result, err := r.Collection.InsertOne(ctx, record)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AccessRecordMongoRepository) Exists(ctx context.Context, specimenID, operatorID string) (bool, error) {
	filter := bson.M{
		"specimenId": specimenID,
		"operatorId": operatorID,
	}
	count, err := r.Collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

func (r *AccessRecordMongoRepository) FindByOperator(ctx context.Context, operatorID string) ([]models.AccessRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "accessedAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"operatorId": operatorID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var records []models.AccessRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return records, nil
}
