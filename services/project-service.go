package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddiq140/Project-Manager/logging"
	"github.com/siddiq140/Project-Manager/models"
)

// ProjectService owns project CRUD, the status lifecycle and checklist
// mutation.
type ProjectService struct {
	ProjectStore ProjectStore
	UserStore    UserStore
}

func NewProjectService(projectStore ProjectStore, userStore UserStore) *ProjectService {
	return &ProjectService{
		ProjectStore: projectStore,
		UserStore:    userStore,
	}
}

// CreateProjectInput carries the request payload for a new project.
// AssignTo is the assignee's email, empty for no assignee.
type CreateProjectInput struct {
	Title     string
	CheckList []models.ChecklistItem
	Priority  models.Priority
	AssignTo  string
	DueDate   *time.Time
}

// EditProjectInput is a partial patch; zero values mean "leave as is".
type EditProjectInput struct {
	Title     string
	CheckList []models.ChecklistItem
	Priority  models.Priority
	AssignTo  string
	DueDate   *time.Time
}

// CreateProject validates the input, resolves the assignee email and
// persists the project. When an assignee is present the project id is
// added to their back-reference set; if that second write fails the
// project is deleted again so no partial state survives.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput, creatorID primitive.ObjectID, creatorEmail string) (*models.Project, error) {
	if input.Title == "" || input.CheckList == nil || input.Priority == "" {
		return nil, ValidationError{Message: "required fields are missing"}
	}
	if !input.Priority.IsValid() {
		return nil, ValidationError{Message: "invalid priority value"}
	}
	for _, item := range input.CheckList {
		if item.Description == "" {
			return nil, ValidationError{Message: "checklist item description is required"}
		}
	}

	assigneeEmail := normalizeEmail(input.AssignTo)
	if assigneeEmail != "" && assigneeEmail == normalizeEmail(creatorEmail) {
		return nil, ValidationError{Message: "cannot assign project to yourself"}
	}

	var assignee *models.User
	if assigneeEmail != "" {
		user, err := s.UserStore.FindByEmail(ctx, assigneeEmail)
		if err != nil {
			return nil, err
		}
		assignee = user
	}

	project := &models.Project{
		Title:     input.Title,
		CheckList: input.CheckList,
		Priority:  input.Priority,
		Status:    models.StatusTodo,
		CreatedBy: creatorID,
		DueDate:   input.DueDate,
		CreatedAt: time.Now(),
		Version:   1,
	}
	if assignee != nil {
		project.AssignTo = &assignee.ID
	}

	id, err := s.ProjectStore.Insert(ctx, project)
	if err != nil {
		return nil, err
	}
	project.ID = id

	if assignee != nil {
		if err := s.UserStore.AddProject(ctx, assignee.ID, id); err != nil {
			// Compensate: drop the project rather than leave a dangling
			// half-created state behind.
			if delErr := s.ProjectStore.Delete(ctx, id); delErr != nil {
				logging.Logger.Errorf("Event ID: PROJECT_CREATE_COMPENSATION_FAILED, Description: Failed to delete project %s after back-reference failure: %v", id.Hex(), delErr)
			}
			return nil, StorageError{Op: "assignee back-reference update", Err: err}
		}
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by user %s", id.Hex(), creatorID.Hex())
	return project, nil
}

// EditProject applies a partial patch to an existing project. The
// assignee can be changed by email; unlike creation, editing does not
// reject assigning the project back to its creator.
func (s *ProjectService) EditProject(ctx context.Context, projectID primitive.ObjectID, patch EditProjectInput) (*models.Project, error) {
	project, err := s.ProjectStore.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if patch.Title != "" {
		project.Title = patch.Title
	}
	if patch.CheckList != nil {
		for _, item := range patch.CheckList {
			if item.Description == "" {
				return nil, ValidationError{Message: "checklist item description is required"}
			}
		}
		project.CheckList = patch.CheckList
	}
	if patch.Priority != "" {
		if !patch.Priority.IsValid() {
			return nil, ValidationError{Message: "invalid priority value"}
		}
		project.Priority = patch.Priority
	}
	if patch.AssignTo != "" {
		user, err := s.UserStore.FindByEmail(ctx, normalizeEmail(patch.AssignTo))
		if err != nil {
			return nil, err
		}
		project.AssignTo = &user.ID
	}
	if patch.DueDate != nil {
		project.DueDate = patch.DueDate
	}

	if err := s.ProjectStore.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project for good. There is no soft delete.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID primitive.ObjectID) error {
	if _, err := s.ProjectStore.FindByID(ctx, projectID); err != nil {
		return err
	}
	return s.ProjectStore.Delete(ctx, projectID)
}

// UpdateProjectStatus overwrites the project status. Any status may
// move to any other status, there is no transition graph.
func (s *ProjectService) UpdateProjectStatus(ctx context.Context, projectID primitive.ObjectID, status models.Status) (*models.Project, error) {
	if !status.IsValid() {
		return nil, ValidationError{Message: "invalid status value"}
	}

	project, err := s.ProjectStore.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	project.Status = status
	if err := s.ProjectStore.Update(ctx, project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: PROJECT_STATUS_UPDATED, Description: Project %s moved to status %s", projectID.Hex(), status)
	return project, nil
}

// MarkChecklistItem flips the done flag of a single checklist entry.
// A missing project and an out-of-range index are the same failure to
// the caller.
func (s *ProjectService) MarkChecklistItem(ctx context.Context, projectID primitive.ObjectID, taskIndex int, isDone bool) error {
	project, err := s.ProjectStore.FindByID(ctx, projectID)
	if err != nil {
		var notFound NotFoundError
		if errors.As(err, &notFound) {
			return NotFoundError{Message: "project or task not found"}
		}
		return err
	}

	if taskIndex < 0 || taskIndex >= len(project.CheckList) {
		return NotFoundError{Message: "project or task not found"}
	}

	project.CheckList[taskIndex].Done = isDone
	return s.ProjectStore.Update(ctx, project)
}

// FilterProjects lists projects the user created or is assigned to,
// restricted by the due-date window the filter tag names. The filter
// set is closed; an unknown tag is a validation error.
func (s *ProjectService) FilterProjects(ctx context.Context, userID primitive.ObjectID, filter models.ProjectFilter) ([]models.Project, error) {
	ranges := GetDateRanges(time.Now())

	var window *DueWindow
	switch filter {
	case models.FilterToday:
		window = &DueWindow{Start: ranges.StartOfToday, End: ranges.EndOfToday}
	case models.FilterThisWeek:
		window = &DueWindow{Start: ranges.StartOfWeek, End: ranges.EndOfWeek}
	case models.FilterThisMonth:
		window = &DueWindow{Start: ranges.StartOfMonth, End: ranges.EndOfMonth}
	case models.FilterAll:
		window = nil
	default:
		return nil, ValidationError{Message: "invalid filter type. Use 'Today', 'This Week', 'This Month', or 'All'"}
	}

	return s.ProjectStore.FindForUser(ctx, userID, window)
}

// GetProjectDetails loads a project and resolves its user references
// to name/email pairs for display.
func (s *ProjectService) GetProjectDetails(ctx context.Context, projectID primitive.ObjectID) (*models.ProjectDetails, error) {
	project, err := s.ProjectStore.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	details := &models.ProjectDetails{Project: *project}

	if creator, err := s.UserStore.FindByID(ctx, project.CreatedBy); err == nil {
		details.CreatedByUser = &models.UserRef{Name: creator.Name, Email: creator.Email}
	}
	if project.AssignTo != nil {
		if assignee, err := s.UserStore.FindByID(ctx, *project.AssignTo); err == nil {
			details.AssignToUser = &models.UserRef{Name: assignee.Name, Email: assignee.Email}
		}
	}

	return details, nil
}
