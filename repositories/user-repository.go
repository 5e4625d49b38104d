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

// UserRepository is the MongoDB implementation of services.UserStore.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) *UserRepository {
	return &UserRepository{collection: collection}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, services.ConflictError{Message: "user already exists"}
		}
		return primitive.NilObjectID, services.StorageError{Op: "user insert", Err: err}
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.NotFoundError{Message: "user not found"}
		}
		return nil, services.StorageError{Op: "user lookup", Err: err}
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.NotFoundError{Message: "user not found"}
		}
		return nil, services.StorageError{Op: "user lookup", Err: err}
	}
	return &user, nil
}

// AddProject records the back-reference on the assignee. $addToSet
// keeps the set free of duplicates no matter how often it is called.
func (r *UserRepository) AddProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	filter := bson.M{"_id": userID}
	update := bson.M{"$addToSet": bson.M{"projects": projectID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return services.StorageError{Op: "user back-reference update", Err: err}
	}
	if result.MatchedCount == 0 {
		return services.NotFoundError{Message: "user not found"}
	}
	return nil
}

func (r *UserRepository) UpdateField(ctx context.Context, userID primitive.ObjectID, field string, value interface{}) error {
	filter := bson.M{"_id": userID}
	update := bson.M{"$set": bson.M{field: value}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ConflictError{Message: "email already in use"}
		}
		return services.StorageError{Op: "user update", Err: err}
	}
	if result.MatchedCount == 0 {
		return services.NotFoundError{Message: "user not found"}
	}
	return nil
}

func (r *UserRepository) ListEmails(ctx context.Context) ([]string, error) {
	projection := options.Find().SetProjection(bson.M{"email": 1, "_id": 0})
	cursor, err := r.collection.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, services.StorageError{Op: "user query", Err: err}
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, services.StorageError{Op: "user decode", Err: err}
	}

	emails := make([]string, 0, len(docs))
	for _, doc := range docs {
		emails = append(emails, doc.Email)
	}
	return emails, nil
}
