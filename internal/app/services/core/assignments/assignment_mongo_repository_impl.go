package assignments

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssignmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAssignmentMongoRepository(db *mongo.Client, dbName string) contracts.AssignmentRepository {
	return &AssignmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionWorkAssignments),
	}
}

func (r *AssignmentMongoRepository) CreateAssignment(ctx context.Context, assignment *models.WorkAssignment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, assignment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrAssignmentAlreadyExists(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AssignmentMongoRepository) FindByID(ctx context.Context, assignmentID string) (*models.WorkAssignment, error) {
	objectID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var assignment models.WorkAssignment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &assignment, nil
}

func (r *AssignmentMongoRepository) FindOpenByPatientAndTestType(ctx context.Context, patientID, testTypeID string) (*models.WorkAssignment, error) {
	filter := bson.M{
		"patientId":  patientID,
		"testTypeId": testTypeID,
		"status":     bson.M{"$ne": models.AssignmentStatusSubmitted},
	}

	var assignment models.WorkAssignment
	err := r.Collection.FindOne(ctx, filter).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &assignment, nil
}

// BindOperator is the single-winner bind: the filter only matches while the
// assignment is still unassigned, so a concurrent second opener modifies
// nothing and keeps the first opener.
func (r *AssignmentMongoRepository) BindOperator(ctx context.Context, assignmentID, operatorID string, assignedAt time.Time) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id": objectID,
		"$or": []bson.M{
			{"assignedTo": ""},
			{"assignedTo": bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$set": bson.M{
		"assignedTo": operatorID,
		"status":     models.AssignmentStatusAssigned,
		"assignedAt": assignedAt,
		"updatedAt":  time.Now(),
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *AssignmentMongoRepository) MarkSubmitted(ctx context.Context, assignmentID string, completedAt time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"status":      models.AssignmentStatusSubmitted,
		"completedAt": completedAt,
		"updatedAt":   time.Now(),
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
