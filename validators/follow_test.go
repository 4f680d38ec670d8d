package validators

import (
	"errors"
	"testing"

	"github.com/yatube/api-go/internal/testdb"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/utils"
)

func TestValidateFollow(t *testing.T) {
	db := testdb.Open(t)
	alice := testdb.CreateUser(t, db, "alice")
	bob := testdb.CreateUser(t, db, "bob")
	principal := &utils.UserClaims{UserID: alice.ID, Username: alice.Username}

	target, err := ValidateFollow(db, principal, "bob")
	if err != nil {
		t.Fatalf("ValidateFollow(bob) returned %v", err)
	}
	if target.ID != bob.ID {
		t.Fatalf("resolved user %d, want %d", target.ID, bob.ID)
	}

	if err := db.Create(&models.Follow{UserID: alice.ID, FollowingID: bob.ID}).Error; err != nil {
		t.Fatalf("create follow: %v", err)
	}

	tests := []struct {
		name      string
		following string
		field     string
		reason    string
	}{
		{"self", "alice", "following", ReasonSelfFollow},
		{"duplicate", "bob", NonFieldErrors, ReasonAlreadySubscribed},
		{"unknown", "carol", "following", "Object with username=carol does not exist."},
		{"empty", "", "following", "This field is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFollow(db, principal, tt.following)

			var fieldErrors FieldErrors
			if !errors.As(err, &fieldErrors) {
				t.Fatalf("got %v, want FieldErrors", err)
			}
			if got := fieldErrors[tt.field]; len(got) != 1 || got[0] != tt.reason {
				t.Fatalf("errors[%q] = %v, want [%q]", tt.field, got, tt.reason)
			}
		})
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("follows = %d, want 1", count)
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob.smith", "user_1", "a+b@c-d"}
	for _, name := range valid {
		if errs := ValidateUsername(name); errs != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", name, errs)
		}
	}

	invalid := []string{"", "   ", "with space", "admin", "ME", "semi;colon"}
	for _, name := range invalid {
		if errs := ValidateUsername(name); errs == nil {
			t.Errorf("ValidateUsername(%q) = nil, want error", name)
		}
	}
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("text", "This field is required.")
	errs.Add("group", "Invalid pk.")

	want := "group: Invalid pk.; text: This field is required."
	if got := errs.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
