package repository

import (
	"context"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentRepository implements DocumentRepository
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new ingested document repository
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	collection := db.Collection("ingested_documents")

	// Create unique index on contentHash
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"contentHash": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on sourceType for history queries
	sourceIndex := mongo.IndexModel{
		Keys: bson.M{"sourceType": 1},
	}
	collection.Indexes().CreateOne(ctx, sourceIndex)

	return &MongoDocumentRepository{
		collection: collection,
	}
}

// InsertIfNew archives a document unless its content hash is already stored.
// Returns false when the content was a duplicate.
func (r *MongoDocumentRepository) InsertIfNew(ctx context.Context, doc *entity.IngestedDocument) (bool, error) {
	if doc.ProcessedAt.IsZero() {
		doc.ProcessedAt = time.Now()
	}

	insertDoc := bson.M{
		"_id":           primitive.NewObjectID().Hex(),
		"filename":      doc.Filename,
		"fileType":      doc.FileType,
		"sourceType":    doc.SourceType,
		"contentHash":   doc.ContentHash,
		"extractedData": doc.ExtractedData,
		"notes":         doc.Notes,
		"processedAt":   doc.ProcessedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"contentHash": doc.ContentHash}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$setOnInsert": insertDoc},
		opts,
	)
	if err != nil {
		return false, err
	}

	if result.UpsertedCount > 0 && result.UpsertedID != nil {
		if id, ok := result.UpsertedID.(string); ok {
			doc.ID = id
		}
		return true, nil
	}
	return false, nil
}

// List returns recently ingested documents, newest first
func (r *MongoDocumentRepository) List(ctx context.Context, sourceType string, limit int) ([]entity.IngestedDocument, error) {
	filter := bson.M{}
	if sourceType != "" {
		filter["sourceType"] = sourceType
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.M{"processedAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	documents := make([]entity.IngestedDocument, 0)
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}
