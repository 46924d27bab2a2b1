package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/arkawidia/lisensia-backend/pkg/auth"
	"github.com/arkawidia/lisensia-backend/pkg/config"
	"github.com/arkawidia/lisensia-backend/pkg/db/models"
	"github.com/arkawidia/lisensia-backend/pkg/enums"
	pkgerrors "github.com/arkawidia/lisensia-backend/pkg/errors"
	"github.com/arkawidia/lisensia-backend/pkg/security"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "lisensia", ExpirationMinutes: 60}
}

func seedUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Name:         "Dewi",
		Email:        email,
		Role:         enums.UserRoleAdmin,
		PasswordHash: hash,
	}
}

func TestLoginReturnsValidToken(t *testing.T) {
	user := seedUser(t, "dewi@example.com", "rahasia-besar")
	store := &fakeUserStore{byEmail: map[string]*models.User{user.Email: user}}
	svc, err := NewService(store, testJWTConfig())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	result, err := svc.Login(context.Background(), "  Dewi@Example.com ", "rahasia-besar")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry in the past: %s", result.ExpiresAt)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	user := seedUser(t, "dewi@example.com", "rahasia-besar")
	store := &fakeUserStore{byEmail: map[string]*models.User{user.Email: user}}
	svc, err := NewService(store, testJWTConfig())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	_, err = svc.Login(context.Background(), "dewi@example.com", "salah")
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailMatchesWrongPasswordError(t *testing.T) {
	user := seedUser(t, "dewi@example.com", "rahasia-besar")
	store := &fakeUserStore{byEmail: map[string]*models.User{user.Email: user}}
	svc, err := NewService(store, testJWTConfig())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "tidakada@example.com", "rahasia-besar")
	_, wrongErr := svc.Login(context.Background(), "dewi@example.com", "salah")
	if unknownErr == nil || wrongErr == nil {
		t.Fatal("both logins must fail")
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, err := NewService(&fakeUserStore{byEmail: map[string]*models.User{}}, testJWTConfig())
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	_, err = svc.Login(context.Background(), "", "")
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
