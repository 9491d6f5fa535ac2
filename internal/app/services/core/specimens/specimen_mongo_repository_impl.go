package specimens

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SpecimenMongoRepository struct {
	Collection *mongo.Collection
}

func NewSpecimenMongoRepository(db *mongo.Client, dbName string) contracts.SpecimenRepository {
	return &SpecimenMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSpecimens),
	}
}

func (r *SpecimenMongoRepository) CreateSpecimen(ctx context.Context, specimen *models.Specimen) (string, error) {
	result, err := r.Collection.InsertOne(ctx, specimen)
	if err != nil {
		// Backed by the unique index on accessionCode; a concurrent allocator
		// winning the race surfaces here and the caller re-allocates.
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrAccessionCodeTaken(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *SpecimenMongoRepository) FindByID(ctx context.Context, specimenID string) (*models.Specimen, error) {
	objectID, err := primitive.ObjectIDFromHex(specimenID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var specimen models.Specimen
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&specimen)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &specimen, nil
}

func (r *SpecimenMongoRepository) FindByAccessionCode(ctx context.Context, accessionCode string) (*models.Specimen, error) {
	var specimen models.Specimen
	err := r.Collection.FindOne(ctx, bson.M{"accessionCode": accessionCode}).Decode(&specimen)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &specimen, nil
}

func (r *SpecimenMongoRepository) FindByIDs(ctx context.Context, specimenIDs []string) ([]models.Specimen, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(specimenIDs))
	for _, specimenID := range specimenIDs {
		objectID, err := primitive.ObjectIDFromHex(specimenID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err)
		}
		objectIDs = append(objectIDs, objectID)
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var specimens []models.Specimen
	if err := cursor.All(ctx, &specimens); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return specimens, nil
}

func (r *SpecimenMongoRepository) FindByStatus(ctx context.Context, status models.SpecimenStatus) ([]models.Specimen, error) {
	return r.findAll(ctx, bson.M{"status": status})
}

func (r *SpecimenMongoRepository) FindAll(ctx context.Context) ([]models.Specimen, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *SpecimenMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Specimen, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "collectedAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var specimens []models.Specimen
	if err := cursor.All(ctx, &specimens); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return specimens, nil
}

func (r *SpecimenMongoRepository) UpdateSpecimen(ctx context.Context, specimen *models.Specimen) error {
	objectID, err := primitive.ObjectIDFromHex(specimen.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"status":       specimen.Status,
		"testedAt":     specimen.TestedAt,
		"testedBy":     specimen.TestedBy,
		"assignmentId": specimen.AssignmentID,
		"updatedAt":    time.Now(),
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *SpecimenMongoRepository) TransitionStatus(ctx context.Context, specimen *models.Specimen, from models.SpecimenStatus) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(specimen.ID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	// The filter matches only while the status still equals the one the caller
	// read, so a racing writer makes this a no-op instead of a lost update.
	filter := bson.M{"_id": objectID, "status": from}
	update := bson.M{"$set": bson.M{
		"status":    specimen.Status,
		"testedAt":  specimen.TestedAt,
		"testedBy":  specimen.TestedBy,
		"updatedAt": time.Now(),
	}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *SpecimenMongoRepository) LatestAccessionCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	filter := bson.M{"accessionCode": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "accessionCode", Value: -1}})

	var specimen models.Specimen
	err := r.Collection.FindOne(ctx, filter, findOptions).Decode(&specimen)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", exceptions.ErrMongoDBFindDocument(err)
	}
	return specimen.AccessionCode, nil
}

func (r *SpecimenMongoRepository) AccessionCodeExists(ctx context.Context, accessionCode string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"accessionCode": accessionCode}, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}
