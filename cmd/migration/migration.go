package main

import (
	"context"
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/drivers/database"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ensures the indexes the service relies on for its uniqueness guarantees and
// seeds the default test type. Safe to run repeatedly.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	client := database.NewMongoDB(driverConfig)
	db := client.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	createIndexes(ctx, db)
	seedDefaultTestType(ctx, db, internalConfig.App.DefaultTestTypeCode)

	log.Println("Migration completed")
}

func createIndexes(ctx context.Context, db *mongo.Database) {
	specimenIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "accessionCode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "collectedAt", Value: -1}},
		},
	}
	if _, err := db.Collection(constvars.MongoCollectionSpecimens).Indexes().CreateMany(ctx, specimenIndexes); err != nil {
		log.Fatalf("Error creating specimen indexes: %v", err)
	}

	// One open assignment per patient and test type. Partial on the open
	// statuses so submitted history never collides with a new order.
	assignmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "testTypeId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{
						models.AssignmentStatusPending,
						models.AssignmentStatusAssigned,
						models.AssignmentStatusInProgress,
					}},
				}),
		},
	}
	if _, err := db.Collection(constvars.MongoCollectionWorkAssignments).Indexes().CreateMany(ctx, assignmentIndexes); err != nil {
		log.Fatalf("Error creating work assignment indexes: %v", err)
	}

	resultIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "assignmentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(constvars.MongoCollectionResults).Indexes().CreateMany(ctx, resultIndexes); err != nil {
		log.Fatalf("Error creating result indexes: %v", err)
	}

	accessIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "specimenId", Value: 1}, {Key: "operatorId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "operatorId", Value: 1}, {Key: "accessedAt", Value: -1}},
		},
	}
	if _, err := db.Collection(constvars.MongoCollectionAccessRecords).Indexes().CreateMany(ctx, accessIndexes); err != nil {
		log.Fatalf("Error creating access record indexes: %v", err)
	}

	memberIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "projectId", Value: 1}, {Key: "operatorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(constvars.MongoCollectionProjectMembers).Indexes().CreateMany(ctx, memberIndexes); err != nil {
		log.Fatalf("Error creating project member indexes: %v", err)
	}

	testTypeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(constvars.MongoCollectionTestTypes).Indexes().CreateMany(ctx, testTypeIndexes); err != nil {
		log.Fatalf("Error creating test type indexes: %v", err)
	}
}

func seedDefaultTestType(ctx context.Context, db *mongo.Database, code string) {
	now := time.Now()

	floatPtr := func(v float64) *float64 { return &v }
	testType := models.TestType{
		Code: code,
		Name: "Standard Blood Panel",
		FieldDefinitions: []models.FieldDefinition{
			{
				Name:      "hemoglobin",
				Label:     "Hemoglobin",
				Kind:      models.FieldKindNumeric,
				Required:  true,
				Unit:      "g/dL",
				Min:       floatPtr(0),
				Max:       floatPtr(30),
				NormalMin: floatPtr(12),
				NormalMax: floatPtr(17.5),
			},
			{
				Name:      "wbc",
				Label:     "White Blood Cell Count",
				Kind:      models.FieldKindNumeric,
				Required:  true,
				Unit:      "10^3/uL",
				Min:       floatPtr(0),
				Max:       floatPtr(200),
				NormalMin: floatPtr(4),
				NormalMax: floatPtr(11),
			},
			{
				Name:          "bloodType",
				Label:         "Blood Type",
				Kind:          models.FieldKindChoice,
				Required:      false,
				AllowedValues: []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"},
			},
			{
				Name:  "morphology",
				Label: "Cell Morphology Notes",
				Kind:  models.FieldKindText,
			},
		},
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	update := bson.M{"$setOnInsert": testType}
	opts := options.Update().SetUpsert(true)
	if _, err := db.Collection(constvars.MongoCollectionTestTypes).UpdateOne(ctx, bson.M{"code": code}, update, opts); err != nil {
		log.Fatalf("Error seeding default test type: %v", err)
	}

	log.Printf("Ensured default test type %q", code)
}
