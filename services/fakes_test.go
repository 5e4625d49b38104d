package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddiq140/Project-Manager/models"
)

// In-memory stores mirroring the MongoDB repositories, including the
// version guard and the unique title/email constraints.

type fakeProjectStore struct {
	mu        sync.Mutex
	projects  map[primitive.ObjectID]models.Project
	findErr   error
	updateErr error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[primitive.ObjectID]models.Project)}
}

func cloneProject(p models.Project) models.Project {
	cp := p
	cp.CheckList = append([]models.ChecklistItem(nil), p.CheckList...)
	return cp
}

func (f *fakeProjectStore) Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.projects {
		if existing.Title == project.Title {
			return primitive.NilObjectID, ConflictError{Message: "project title already exists"}
		}
	}
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	f.projects[project.ID] = cloneProject(*project)
	return project.ID, nil
}

func (f *fakeProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	project, ok := f.projects[id]
	if !ok {
		return nil, NotFoundError{Message: "project not found"}
	}
	cp := cloneProject(project)
	return &cp, nil
}

func (f *fakeProjectStore) FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var projects []models.Project
	for _, project := range f.projects {
		if project.CreatedBy == creatorID {
			projects = append(projects, cloneProject(project))
		}
	}
	return projects, nil
}

func (f *fakeProjectStore) FindForUser(ctx context.Context, userID primitive.ObjectID, window *DueWindow) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var projects []models.Project
	for _, project := range f.projects {
		mine := project.CreatedBy == userID || (project.AssignTo != nil && *project.AssignTo == userID)
		if !mine {
			continue
		}
		if window != nil {
			if project.DueDate == nil {
				continue
			}
			due := *project.DueDate
			if due.Before(window.Start) || !due.Before(window.End) {
				continue
			}
		}
		projects = append(projects, cloneProject(project))
	}
	return projects, nil
}

func (f *fakeProjectStore) Update(ctx context.Context, project *models.Project) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.projects[project.ID]
	if !ok {
		return NotFoundError{Message: "project not found"}
	}
	if stored.Version != project.Version {
		return ConflictError{Message: "project was modified concurrently, reload and retry"}
	}
	project.Version++
	f.projects[project.ID] = cloneProject(*project)
	return nil
}

func (f *fakeProjectStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.projects[id]; !ok {
		return NotFoundError{Message: "project not found"}
	}
	delete(f.projects, id)
	return nil
}

type fakeUserStore struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]models.User
	addProjectErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, ConflictError{Message: "user already exists"}
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return user.ID, nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, NotFoundError{Message: "user not found"}
	}
	return &user, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, NotFoundError{Message: "user not found"}
}

func (f *fakeUserStore) AddProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	if f.addProjectErr != nil {
		return f.addProjectErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return NotFoundError{Message: "user not found"}
	}
	for _, id := range user.Projects {
		if id == projectID {
			return nil
		}
	}
	user.Projects = append(user.Projects, projectID)
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) UpdateField(ctx context.Context, userID primitive.ObjectID, field string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return NotFoundError{Message: "user not found"}
	}

	str, _ := value.(string)
	switch field {
	case "name":
		user.Name = str
	case "email":
		for _, existing := range f.users {
			if existing.ID != userID && existing.Email == str {
				return ConflictError{Message: "email already in use"}
			}
		}
		user.Email = str
	case "password":
		user.Password = str
	}
	f.users[userID] = user
	return nil
}

func (f *fakeUserStore) ListEmails(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	emails := make([]string, 0, len(f.users))
	for _, user := range f.users {
		emails = append(emails, user.Email)
	}
	return emails, nil
}
