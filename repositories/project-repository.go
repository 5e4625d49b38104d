package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddiq140/Project-Manager/models"
	"github.com/siddiq140/Project-Manager/services"
)

// ProjectRepository is the MongoDB implementation of
// services.ProjectStore. One project is one document; the version
// field guards read-modify-write cycles.
type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(collection *mongo.Collection) *ProjectRepository {
	return &ProjectRepository{collection: collection}
}

// EnsureIndexes creates the unique index backing the store-wide title
// invariant.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"title": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on project title: %v", err)
	}
	return nil
}

func (r *ProjectRepository) Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error) {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, services.ConflictError{Message: "project title already exists"}
		}
		return primitive.NilObjectID, services.StorageError{Op: "project insert", Err: err}
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.NotFoundError{Message: "project not found"}
		}
		return nil, services.StorageError{Op: "project lookup", Err: err}
	}
	return &project, nil
}

func (r *ProjectRepository) FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"createdBy": creatorID})
	if err != nil {
		return nil, services.StorageError{Op: "project query", Err: err}
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, services.StorageError{Op: "project decode", Err: err}
	}
	return projects, nil
}

func (r *ProjectRepository) FindForUser(ctx context.Context, userID primitive.ObjectID, window *services.DueWindow) ([]models.Project, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"createdBy": userID},
			{"assignTo": userID},
		},
	}
	if window != nil {
		filter["dueDate"] = bson.M{
			"$gte": window.Start,
			"$lt":  window.End,
		}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, services.StorageError{Op: "project query", Err: err}
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, services.StorageError{Op: "project decode", Err: err}
	}
	return projects, nil
}

// Update replaces the whole document, but only if the stored version
// still matches the one the caller loaded. A version mismatch against
// an existing document is a stale write.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	loadedVersion := project.Version
	project.Version = loadedVersion + 1

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": project.ID, "version": loadedVersion}, project)
	if err != nil {
		project.Version = loadedVersion
		if mongo.IsDuplicateKeyError(err) {
			return services.ConflictError{Message: "project title already exists"}
		}
		return services.StorageError{Op: "project update", Err: err}
	}

	if result.MatchedCount == 0 {
		project.Version = loadedVersion
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": project.ID})
		if err != nil {
			return services.StorageError{Op: "project update", Err: err}
		}
		if count > 0 {
			return services.ConflictError{Message: "project was modified concurrently, reload and retry"}
		}
		return services.NotFoundError{Message: "project not found"}
	}

	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return services.StorageError{Op: "project delete", Err: err}
	}
	if result.DeletedCount == 0 {
		return services.NotFoundError{Message: "project not found"}
	}
	return nil
}
