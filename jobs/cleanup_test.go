package jobs

import (
	"testing"
	"time"

	"github.com/yatube/api-go/internal/testdb"
	"github.com/yatube/api-go/models"
)

func TestPurgeExpiredRefreshTokens(t *testing.T) {
	db := testdb.Open(t)
	user := testdb.CreateUser(t, db, "alice")
	now := time.Now()

	tokens := []models.RefreshToken{
		{UserID: user.ID, Token: "expired", ExpirationDate: now.Add(-time.Hour)},
		{UserID: user.ID, Token: "live", ExpirationDate: now.Add(time.Hour)},
		{UserID: user.ID, Token: "revoked", ExpirationDate: now.Add(time.Hour)},
	}
	if err := db.Create(&tokens).Error; err != nil {
		t.Fatalf("create tokens: %v", err)
	}
	if err := db.Delete(&tokens[2]).Error; err != nil {
		t.Fatalf("revoke token: %v", err)
	}

	removed, err := PurgeExpiredRefreshTokens(db, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed %d tokens, want 2", removed)
	}

	var left []models.RefreshToken
	db.Unscoped().Find(&left)
	if len(left) != 1 || left[0].Token != "live" {
		t.Fatalf("remaining tokens = %+v, want only live", left)
	}
}
