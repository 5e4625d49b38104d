package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	user, token, err := service.Register(context.Background(), "Alice", "Alice@Example.COM", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if user.Password == "hunter22" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "a@b.com", "secret1"},
		{"bad email", "Alice", "not-an-email", "secret1"},
		{"bad email no tld", "Alice", "a@b", "secret1"},
		{"short password", "Alice", "a@b.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Register(context.Background(), tt.userName, tt.email, tt.password)

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	if _, _, err := service.Register(context.Background(), "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := service.Register(context.Background(), "Other Alice", "ALICE@example.com", "hunter23")

	var conflictErr ConflictError
	if !errors.As(err, &conflictErr) {
		t.Errorf("error = %v, want ConflictError", err)
	}
}

func TestLogin(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	if _, _, err := service.Register(context.Background(), "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := service.Login(context.Background(), "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Name != "Alice" || token == "" {
		t.Errorf("login returned user %q, token %q", user.Name, token)
	}

	_, _, err = service.Login(context.Background(), "alice@example.com", "wrong")
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("wrong password: error = %v, want ValidationError", err)
	}

	_, _, err = service.Login(context.Background(), "ghost@example.com", "hunter22")
	var notFoundErr NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("unknown email: error = %v, want NotFoundError", err)
	}
}

func TestUpdateUserSingleField(t *testing.T) {
	store := newFakeUserStore()
	service := NewUserService(store)

	user, _, err := service.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	field, err := service.UpdateUser(context.Background(), user.ID, map[string]string{"name": "Alicia"}, "")
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if field != "name" {
		t.Errorf("field = %q, want name", field)
	}

	stored, _ := store.FindByID(context.Background(), user.ID)
	if stored.Name != "Alicia" {
		t.Errorf("name = %q, want Alicia", stored.Name)
	}
}

func TestUpdateUserValidation(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	user, _, err := service.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name        string
		updates     map[string]string
		oldPassword string
	}{
		{"no fields", map[string]string{}, ""},
		{"two fields", map[string]string{"name": "A", "email": "a@b.com"}, ""},
		{"password without old", map[string]string{"password": "newsecret"}, ""},
		{"password with wrong old", map[string]string{"password": "newsecret"}, "not-it"},
		{"bad email", map[string]string{"email": "nope"}, ""},
		{"unknown field", map[string]string{"role": "admin"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateUser(context.Background(), user.ID, tt.updates, tt.oldPassword)

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUpdateUserPassword(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	user, _, err := service.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.UpdateUser(context.Background(), user.ID, map[string]string{"password": "newsecret"}, "hunter22"); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if _, _, err := service.Login(context.Background(), "alice@example.com", "newsecret"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestGetAllUserEmails(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, _, err := service.Register(context.Background(), "User", email, "hunter22"); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	emails, err := service.GetAllUserEmails(context.Background())
	if err != nil {
		t.Fatalf("GetAllUserEmails: %v", err)
	}
	if len(emails) != 2 {
		t.Errorf("got %d emails, want 2", len(emails))
	}
}

func TestResolveAssignee(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	registered, _, err := service.Register(context.Background(), "Bob", "bob@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := service.ResolveAssignee(context.Background(), "  BOB@example.com ")
	if err != nil {
		t.Fatalf("ResolveAssignee: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("resolved %v, want %v", user.ID, registered.ID)
	}

	_, err = service.ResolveAssignee(context.Background(), "ghost@example.com")
	var notFoundErr NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}
