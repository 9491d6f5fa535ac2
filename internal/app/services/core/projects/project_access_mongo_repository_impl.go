package projects

import (
	"context"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectAccessMongoRepository struct {
	Collection *mongo.Collection
}

func NewProjectAccessMongoRepository(db *mongo.Client, dbName string) contracts.ProjectAccessChecker {
	return &ProjectAccessMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionProjectMembers),
	}
}

func (r *ProjectAccessMongoRepository) HasProjectAccess(ctx context.Context, operatorID, projectID string) (bool, error) {
	filter := bson.M{
		"projectId":  projectID,
		"operatorId": operatorID,
	}
	count, err := r.Collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}
