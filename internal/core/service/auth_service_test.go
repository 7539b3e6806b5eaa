package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/medimeet/booking-api/internal/core/domain"
)

type stubAuthRepo struct {
	byEmail map[string]*domain.User
}

func newStubAuthRepo(users ...*domain.User) *stubAuthRepo {
	r := &stubAuthRepo{byEmail: make(map[string]*domain.User)}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.byEmail[user.Email] = &clone
	return user, nil
}

const testSecret = "test-secret"

func hashedUser(email, password, role string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID: "uid-1", ExternalID: "sub-1",
		Email: email, PasswordHash: string(hash),
		Role: role, Credits: domain.StartingCredits,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Jane Doe", "jane@example.com", "s3cret", domain.RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" || user.ExternalID == "" {
		t.Error("register must assign IDs")
	}
	if user.Credits != domain.StartingCredits {
		t.Errorf("expected %d starting credits, got %d", domain.StartingCredits, user.Credits)
	}
	if user.PasswordHash == "s3cret" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")) != nil {
		t.Error("stored hash does not verify the password")
	}
	if _, ok := repo.byEmail["jane@example.com"]; !ok {
		t.Error("user not persisted")
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	for _, role := range []string{"", "ADMIN", "doctor"} {
		_, err := svc.Register(context.Background(), "X", "x@example.com", "pw", role)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("role %q: expected ErrInvalidCredentials, got %v", role, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo(hashedUser("jane@example.com", "pw", domain.RolePatient))
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "pw", domain.RolePatient)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo(hashedUser("jane@example.com", "s3cret", domain.RoleDoctor))
	svc := NewAuthService(repo, testSecret, time.Hour)

	token, user, err := svc.Login(context.Background(), "jane@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("wrong user returned: %s", user.Email)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "sub-1" {
		t.Errorf("subject claim must be the external ID, got %v", claims["sub"])
	}
	if claims["role"] != domain.RoleDoctor {
		t.Errorf("expected role claim %s, got %v", domain.RoleDoctor, claims["role"])
	}
	if claims["uid"] != "uid-1" {
		t.Errorf("expected uid claim uid-1, got %v", claims["uid"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo(hashedUser("jane@example.com", "s3cret", domain.RolePatient))
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
