package service

import (
	"context"
	"errors"
	"testing"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupServiceDB(t)
	return NewAuthService(testAuthConfig(), repository.NewAccountRepository(db))
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	account, err := svc.Register(RegisterInput{
		Username: " newuser ",
		Email:    "New.User@Example.com ",
		Password: "secret123",
		FullName: "新用户",
		Phone:    "13900000000",
		Address:  "测试地址",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %s", account.Email)
	}
	if account.Username != "newuser" {
		t.Fatalf("expected trimmed username stored, got %q", account.Username)
	}
	if account.Customer == nil {
		t.Fatalf("expected customer identity created with account")
	}

	result, err := svc.Login("new.user@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Role != constants.RoleUser {
		t.Fatalf("expected role user, got %s", result.Role)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected tokens issued")
	}

	claims, err := svc.ParseAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if claims.AccountID != account.ID || claims.Role != constants.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	actor, err := svc.ResolveActor(context.Background(), claims)
	if err != nil {
		t.Fatalf("resolve actor failed: %v", err)
	}
	if actor.ID != account.ID || actor.Role != constants.RoleUser {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	input := RegisterInput{Email: "dup@example.com", Password: "secret123"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthLoginFailures(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(testAuthConfig(), repository.NewAccountRepository(db))

	account := createTestAccount(t, db, "login@example.com", "password")

	if _, err := svc.Login("login@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("missing@example.com", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	account.Status = constants.AccountStatusDisabled
	if err := db.Save(&account).Error; err != nil {
		t.Fatalf("disable account failed: %v", err)
	}
	if _, err := svc.Login("login@example.com", "password"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthStaffRoleClaims(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(testAuthConfig(), repository.NewAccountRepository(db))

	createTestStaff(t, db, "admin@example.com", constants.RoleAdmin)

	result, err := svc.Login("admin@example.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Role != constants.RoleAdmin {
		t.Fatalf("expected role admin, got %s", result.Role)
	}
}

func TestAuthChangePasswordInvalidatesRefresh(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(testAuthConfig(), repository.NewAccountRepository(db))

	account := createTestAccount(t, db, "rotate@example.com", "password")

	result, err := svc.Login("rotate@example.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(account.ID, "wrong", "newpassword"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(account.ID, "password", "newpassword"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// 改密后旧刷新令牌版本号失配
	if _, err := svc.Refresh(result.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after password change, got %v", err)
	}
	if _, err := svc.Login("rotate@example.com", "newpassword"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthRefreshRoundtrip(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(testAuthConfig(), repository.NewAccountRepository(db))

	createTestAccount(t, db, "refresh@example.com", "password")

	result, err := svc.Login("refresh@example.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	renewed, err := svc.Refresh(result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if renewed.AccessToken == "" {
		t.Fatalf("expected new access token")
	}

	if _, err := svc.Refresh("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthLogoutBumpsTokenVersion(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAuthService(testAuthConfig(), repository.NewAccountRepository(db))

	account := createTestAccount(t, db, "logout@example.com", "password")

	result, err := svc.Login("logout@example.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(account.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	claims, err := svc.ParseAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if _, err := svc.ResolveActor(context.Background(), claims); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}
