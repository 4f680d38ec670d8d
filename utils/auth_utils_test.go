package utils

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	user := UserClaims{UserID: 3, Username: "leo"}

	token, err := GenerateToken("secret", user, AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken("secret", token, AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if *claims != user {
		t.Fatalf("got %+v, want %+v", *claims, user)
	}

	if _, err := ParseToken("secret", token, RefreshToken); err != ErrInvalidToken {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
	if _, err := ParseToken("other", token, AccessToken); err != ErrInvalidToken {
		t.Errorf("token accepted with wrong secret: %v", err)
	}
	if _, err := ParseToken("secret", "not-a-token", AccessToken); err != ErrInvalidToken {
		t.Errorf("garbage accepted: %v", err)
	}
}

func TestGenerateTokenIsUnique(t *testing.T) {
	user := UserClaims{UserID: 3, Username: "leo"}

	first, _ := GenerateToken("secret", user, RefreshToken, time.Hour)
	second, _ := GenerateToken("secret", user, RefreshToken, time.Hour)
	if first == second {
		t.Fatal("two tokens issued in the same second are identical")
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, _ := GenerateToken("secret", UserClaims{UserID: 3, Username: "leo"}, AccessToken, -time.Minute)
	if _, err := ParseToken("secret", token, AccessToken); err != ErrInvalidToken {
		t.Fatalf("expired token accepted: %v", err)
	}
}
