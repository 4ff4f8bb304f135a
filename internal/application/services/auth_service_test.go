package services

import (
	"context"
	"testing"
	"time"

	"github.com/daybook/core/internal/adapters/repository"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/config"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	cfg := config.JWTConfig{
		Secret:           "test-secret-key-for-tests-only",
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "daybook-api",
	}
	return NewAuthService(repository.NewUserRepository(), cfg, logger.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "sam@example.com",
		Name:     "Sam",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" || reg.TokenType != "Bearer" {
		t.Errorf("unexpected token response: %+v", reg)
	}
	if reg.User.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}
	if reg.User.Role != entities.UserRoleMember {
		t.Errorf("default role = %q, want member", reg.User.Role)
	}

	login, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "sam@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Error("login returned a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)

	req := ports.RegisterRequest{Email: "sam@example.com", Name: "Sam", Password: "correct horse battery"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email: "sam@example.com", Name: "Sam", Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []ports.LoginRequest{
		{Email: "sam@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "correct horse battery"},
	}
	for _, req := range cases {
		if _, err := svc.Login(context.Background(), req); err != entities.ErrUnauthorized {
			t.Errorf("Login(%s) err = %v, want ErrUnauthorized", req.Email, err)
		}
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email: "sam@example.com", Name: "Sam", Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), reg.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("unexpected refresh response: %+v", refreshed)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Error("refresh token was not rotated")
	}
	if refreshed.User.ID != reg.User.ID {
		t.Error("refresh returned a different user")
	}

	// The spent token must not work a second time.
	if _, err := svc.Refresh(context.Background(), reg.RefreshToken); err != entities.ErrUnauthorized {
		t.Errorf("reused token err = %v, want ErrUnauthorized", err)
	}
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc := newAuthFixture(t)
	if _, err := svc.Refresh(context.Background(), "never-issued"); err != entities.ErrUnauthorized {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email: "sam@example.com", Name: "Sam", Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(context.Background(), reg.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), reg.RefreshToken); err != entities.ErrUnauthorized {
		t.Errorf("revoked token err = %v, want ErrUnauthorized", err)
	}

	// Revoking again is a no-op.
	if err := svc.Logout(context.Background(), reg.RefreshToken); err != nil {
		t.Errorf("repeat Logout: %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email: "sam@example.com", Name: "Sam", Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	claims, err := svc.ValidateToken(reg.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != reg.User.ID.String() {
		t.Errorf("claims user = %q, want %q", claims.UserID, reg.User.ID)
	}
	if claims.Email != "sam@example.com" {
		t.Errorf("claims email = %q", claims.Email)
	}

	if _, err := svc.ValidateToken(reg.AccessToken + "tampered"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
