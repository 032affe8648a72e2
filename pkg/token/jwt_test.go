package token

import (
	"testing"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	tokenString, err := manager.GenerateToken(42, "sales@example.com", "USER")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := manager.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("unexpected user id: %d", claims.UserID)
	}
	if claims.Email != "sales@example.com" {
		t.Errorf("unexpected email: %q", claims.Email)
	}
	if claims.Role != "USER" {
		t.Errorf("unexpected role: %q", claims.Role)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)
	other := NewJWTManager("another-secret", 1, 7)

	tokenString, err := manager.GenerateToken(1, "a@b.c", "USER")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := other.VerifyToken(tokenString); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
	if _, err := manager.VerifyToken("not-a-jwt"); err == nil {
		t.Error("garbage token must be rejected")
	}
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	refresh, err := manager.GenerateRefreshToken(7, "a@b.c", "USER")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	claims, err := manager.VerifyToken(refresh)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("unexpected user id: %d", claims.UserID)
	}
}

func TestRTCTokenRoundtrip(t *testing.T) {
	builder := NewRTCTokenBuilder("app-1", "rtc-secret", 3600)

	tokenString, err := builder.BuildToken("sales-room", "visitor-9")
	if err != nil {
		t.Fatalf("BuildToken failed: %v", err)
	}

	claims, err := builder.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.AppID != "app-1" || claims.Channel != "sales-room" || claims.UID != "visitor-9" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRTCTokenUnconfigured(t *testing.T) {
	builder := NewRTCTokenBuilder("", "", 0)
	if _, err := builder.BuildToken("room", "uid"); err == nil {
		t.Error("unconfigured builder must refuse to sign")
	}
}
