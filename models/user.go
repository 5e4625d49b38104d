package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	// Projects is a denormalized back-reference to projects the user is
	// assigned to, maintained at project creation time.
	Projects  []primitive.ObjectID `bson:"projects" json:"projects"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}
