package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddiq140/Project-Manager/models"
)

// DueWindow restricts a project query to due dates in [Start, End).
type DueWindow struct {
	Start time.Time
	End   time.Time
}

// ProjectStore is the persistence surface the project services depend
// on. The MongoDB implementation lives in the repositories package.
type ProjectStore interface {
	Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error)
	// FindForUser returns projects the user created or is assigned to,
	// optionally restricted to a due-date window.
	FindForUser(ctx context.Context, userID primitive.ObjectID, window *DueWindow) ([]models.Project, error)
	// Update persists the whole document. The write is guarded by the
	// project's version: a stale version yields a ConflictError.
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the persistence surface for user lookups and the
// assignee back-reference.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// AddProject adds a project id to the user's back-reference set.
	// Adding the same id twice is a no-op.
	AddProject(ctx context.Context, userID, projectID primitive.ObjectID) error
	UpdateField(ctx context.Context, userID primitive.ObjectID, field string, value interface{}) error
	ListEmails(ctx context.Context) ([]string, error)
}
