package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority is the urgency level assigned to a project.
type Priority string

const (
	PriorityHigh     Priority = "High"
	PriorityModerate Priority = "Moderate"
	PriorityLow      Priority = "Low"
)

// Priorities lists all valid priority values in display order.
var Priorities = []Priority{PriorityHigh, PriorityModerate, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityModerate, PriorityLow:
		return true
	}
	return false
}

// Status is the board column a project currently sits in.
type Status string

const (
	StatusTodo     Status = "TODO"
	StatusProgress Status = "PROGRESS"
	StatusBacklog  Status = "BACKLOG"
	StatusDone     Status = "DONE"
)

// Statuses lists all valid status values in board order.
var Statuses = []Status{StatusTodo, StatusProgress, StatusBacklog, StatusDone}

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusProgress, StatusBacklog, StatusDone:
		return true
	}
	return false
}

// ChecklistItem is a single entry in a project checklist. It has no
// lifecycle of its own, it lives and dies with its parent project.
type ChecklistItem struct {
	Description string `bson:"description" json:"description"`
	Done        bool   `bson:"done" json:"done"`
}

type Project struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title     string              `bson:"title" json:"title"`
	CheckList []ChecklistItem     `bson:"checkList" json:"checklist"`
	Priority  Priority            `bson:"priority" json:"priority"`
	Status    Status              `bson:"status" json:"status"`
	CreatedBy primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	AssignTo  *primitive.ObjectID `bson:"assignTo,omitempty" json:"assignTo,omitempty"`
	DueDate   *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	// Version is bumped on every write; stale writes are rejected.
	Version int64 `bson:"version" json:"version"`
}

// UserRef is the resolved form of a user reference, returned instead of
// a raw id when the caller asks for project details.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectDetails is a project with its user references resolved.
type ProjectDetails struct {
	Project
	CreatedByUser *UserRef `json:"createdByUser,omitempty"`
	AssignToUser  *UserRef `json:"assignToUser,omitempty"`
}
