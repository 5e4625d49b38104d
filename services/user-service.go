package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/siddiq140/Project-Manager/logging"
	"github.com/siddiq140/Project-Manager/models"
	"github.com/siddiq140/Project-Manager/utils"
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const bcryptCost = 12

// UserService handles registration, login and account updates, and
// resolves assignee emails for the project service.
type UserService struct {
	UserStore UserStore
}

func NewUserService(userStore UserStore) *UserService {
	return &UserService{UserStore: userStore}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it together with a signed
// token. Emails are stored lowercase; duplicates are a conflict.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)

	if name == "" {
		return nil, "", ValidationError{Message: "user name is required"}
	}
	if !emailRegex.MatchString(email) {
		return nil, "", ValidationError{Message: "invalid email format"}
	}
	if len(password) < 6 {
		return nil, "", ValidationError{Message: "password must be at least 6 characters long"}
	}

	_, err := s.UserStore.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", ConflictError{Message: "user already exists"}
	}
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", StorageError{Op: "password hashing", Err: err}
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		Projects:  []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}

	id, err := s.UserStore.Insert(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := utils.GenerateToken(id.Hex(), user.Email)
	if err != nil {
		return nil, "", StorageError{Op: "token generation", Err: err}
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User %s registered", user.Email)
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.UserStore.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ValidationError{Message: "invalid credentials"}
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", StorageError{Op: "token generation", Err: err}
	}

	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.UserStore.FindByID(ctx, userID)
}

// UpdateUser changes exactly one of name, email or password. Changing
// the password requires the old one.
func (s *UserService) UpdateUser(ctx context.Context, userID primitive.ObjectID, updates map[string]string, oldPassword string) (string, error) {
	if len(updates) != 1 {
		return "", ValidationError{Message: "you can only update one field at a time"}
	}

	user, err := s.UserStore.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	var field string
	var value string
	for k, v := range updates {
		field, value = k, v
	}

	switch field {
	case "name":
		if value == "" {
			return "", ValidationError{Message: "user name is required"}
		}
	case "email":
		value = normalizeEmail(value)
		if !emailRegex.MatchString(value) {
			return "", ValidationError{Message: "invalid email format"}
		}
	case "password":
		if oldPassword == "" {
			return "", ValidationError{Message: "old password is required to update the password"}
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
			return "", ValidationError{Message: "old password is incorrect"}
		}
		if len(value) < 6 {
			return "", ValidationError{Message: "password must be at least 6 characters long"}
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(value), bcryptCost)
		if err != nil {
			return "", StorageError{Op: "password hashing", Err: err}
		}
		value = string(hashed)
	default:
		return "", ValidationError{Message: "unknown field: " + field}
	}

	if err := s.UserStore.UpdateField(ctx, userID, field, value); err != nil {
		return "", err
	}

	logging.Logger.Infof("Event ID: USER_UPDATED, Description: User %s updated field %s", userID.Hex(), field)
	return field, nil
}

// GetAllUserEmails backs the assignee picker on the frontend.
func (s *UserService) GetAllUserEmails(ctx context.Context) ([]string, error) {
	return s.UserStore.ListEmails(ctx)
}

// ResolveAssignee translates a human-entered email into a stored user.
func (s *UserService) ResolveAssignee(ctx context.Context, email string) (*models.User, error) {
	return s.UserStore.FindByEmail(ctx, normalizeEmail(email))
}
