package controllers

import (
	"errors"
	"testing"

	"github.com/yatube/api-go/internal/testdb"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/validators"
)

// A second insert of the same edge models a request that lost the race after
// both passed the pre-check.
func TestSaveFollowDuplicate(t *testing.T) {
	db := testdb.Open(t)
	alice := testdb.CreateUser(t, db, "alice")
	bob := testdb.CreateUser(t, db, "bob")

	if err := saveFollow(db, &models.Follow{UserID: alice.ID, FollowingID: bob.ID}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := saveFollow(db, &models.Follow{UserID: alice.ID, FollowingID: bob.ID})
	var fieldErrors validators.FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("got %v, want FieldErrors", err)
	}
	if got := fieldErrors[validators.NonFieldErrors]; len(got) != 1 || got[0] != validators.ReasonAlreadySubscribed {
		t.Fatalf("got %v", fieldErrors)
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("follows = %d, want 1", count)
	}
}

func TestSaveFollowSelfRejectedByStore(t *testing.T) {
	db := testdb.Open(t)
	alice := testdb.CreateUser(t, db, "alice")

	if err := saveFollow(db, &models.Follow{UserID: alice.ID, FollowingID: alice.ID}); err == nil {
		t.Fatal("store accepted a self follow")
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("got %q", got)
	}
}
