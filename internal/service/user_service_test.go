package service

import (
	"context"
	"testing"
	"time"

	"ai-sales-go/internal/model"
	"ai-sales-go/pkg/calendar"
	"ai-sales-go/pkg/database"
	"ai-sales-go/pkg/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uint]*model.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[uint]*model.User),
		nextID:  1,
	}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetGoogleTokens(_ context.Context, userID uint) (*calendar.Tokens, error) {
	u, err := r.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &calendar.Tokens{
		AccessToken:  u.GoogleAccessToken,
		RefreshToken: u.GoogleRefreshToken,
		Expiry:       u.GoogleTokenExpiry,
	}, nil
}

func (r *fakeUserRepo) SaveGoogleTokens(_ context.Context, userID uint, tokens *calendar.Tokens) error {
	u, err := r.FindByID(userID)
	if err != nil {
		return err
	}
	u.GoogleAccessToken = tokens.AccessToken
	u.GoogleRefreshToken = tokens.RefreshToken
	u.GoogleTokenExpiry = tokens.Expiry
	return nil
}

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtManager := token.NewJWTManager("test-secret", 1, 7)
	return NewUserService(repo, jwtManager), repo
}

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	old := database.RDB
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RDB = old })
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register("sales@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password must be stored hashed")
	}
	if user.Role != "USER" {
		t.Errorf("unexpected role: %q", user.Role)
	}

	if _, err := svc.Register("sales@example.com", "secret123"); err == nil {
		t.Error("duplicate email must be rejected")
	}

	access, refresh, err := svc.Login("sales@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Error("login must return both tokens")
	}

	if _, _, err := svc.Login("sales@example.com", "wrong"); err == nil {
		t.Error("wrong password must be rejected")
	}
	if _, _, err := svc.Login("nobody@example.com", "secret123"); err == nil {
		t.Error("unknown email must be rejected")
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	setupTestRedis(t)
	svc, _ := newTestUserService(t)

	if _, err := svc.Register("sales@example.com", "secret123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	access, _, err := svc.Login("sales@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if svc.IsTokenBlacklisted(access) {
		t.Error("token must not be blacklisted before logout")
	}
	if err := svc.Logout(access); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if !svc.IsTokenBlacklisted(access) {
		t.Error("token must be blacklisted after logout")
	}
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.Register("sales@example.com", "secret123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, refresh, err := svc.Login("sales@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	newAccess, newRefresh, err := svc.RefreshToken(refresh)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Error("refresh must return a new token pair")
	}

	if _, _, err := svc.RefreshToken("not-a-token"); err == nil {
		t.Error("garbage refresh token must be rejected")
	}
}

func TestGoogleStatus(t *testing.T) {
	svc, repo := newTestUserService(t)

	user, err := svc.Register("sales@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	connected, err := svc.GoogleStatus(user.ID)
	if err != nil {
		t.Fatalf("GoogleStatus failed: %v", err)
	}
	if connected {
		t.Error("fresh user must not be connected")
	}

	expiry := time.Now().Add(time.Hour)
	if err := repo.SaveGoogleTokens(context.Background(), user.ID, &calendar.Tokens{
		AccessToken:  "at",
		RefreshToken: "rt",
		Expiry:       &expiry,
	}); err != nil {
		t.Fatalf("SaveGoogleTokens failed: %v", err)
	}

	connected, err = svc.GoogleStatus(user.ID)
	if err != nil {
		t.Fatalf("GoogleStatus failed: %v", err)
	}
	if !connected {
		t.Error("user with refresh token must report connected")
	}
}
