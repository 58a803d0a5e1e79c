package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
)

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Signup("Asha", "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %s, want USER", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	loggedIn, token, err := f.auth.Login("asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in as %d, want %d", loggedIn.ID, user.ID)
	}
	if token == "" {
		t.Error("empty token")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.user(t, "asha@example.com")

	_, err := f.auth.Signup("Asha Again", "asha@example.com", "another")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeUserAlreadyExists {
		t.Fatalf("err = %v, want user-already-exists", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	f := newFixture(t)
	f.user(t, "asha@example.com")

	_, _, wrongPassword := f.auth.Login("asha@example.com", "nope")
	_, _, unknownEmail := f.auth.Login("ghost@example.com", "nope")

	var a, b *apperr.Error
	if !errors.As(wrongPassword, &a) || !errors.As(unknownEmail, &b) {
		t.Fatalf("unexpected error types: %v / %v", wrongPassword, unknownEmail)
	}
	if a.Code != apperr.CodeIncorrectPassword || b.Code != apperr.CodeIncorrectPassword {
		t.Errorf("codes = %d / %d, want both %d", a.Code, b.Code, apperr.CodeIncorrectPassword)
	}
	if a.Message != b.Message {
		t.Error("wrong password and unknown email must be indistinguishable")
	}
}

func TestChangeRole(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "asha@example.com")

	promoted, err := f.users.ChangeRole(user.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if promoted.Role != models.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", promoted.Role)
	}

	_, err = f.users.ChangeRole(user.ID, "SUPERUSER")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeUnprocessableEntity {
		t.Fatalf("err = %v, want unprocessable-entity", err)
	}
}
