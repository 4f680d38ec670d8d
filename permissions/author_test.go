package permissions

import (
	"net/http"
	"testing"

	"github.com/yatube/api-go/utils"
)

func TestHasPermission(t *testing.T) {
	alice := &utils.UserClaims{UserID: 1, Username: "alice"}

	tests := []struct {
		method    string
		principal *utils.UserClaims
		want      Decision
	}{
		{http.MethodGet, nil, Allow},
		{http.MethodHead, nil, Allow},
		{http.MethodOptions, nil, Allow},
		{http.MethodPost, nil, Unauthenticated},
		{http.MethodPost, alice, Allow},
		{http.MethodDelete, nil, Unauthenticated},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.method, tt.principal); got != tt.want {
			t.Errorf("HasPermission(%s, %v) = %v, want %v", tt.method, tt.principal, got, tt.want)
		}
	}
}

func TestHasObjectPermission(t *testing.T) {
	alice := &utils.UserClaims{UserID: 1, Username: "alice"}
	bob := &utils.UserClaims{UserID: 2, Username: "bob"}
	const ownerID = 1

	tests := []struct {
		name      string
		method    string
		principal *utils.UserClaims
		want      Decision
	}{
		{"anonymous read", http.MethodGet, nil, Allow},
		{"stranger read", http.MethodGet, bob, Allow},
		{"owner put", http.MethodPut, alice, Allow},
		{"owner patch", http.MethodPatch, alice, Allow},
		{"owner delete", http.MethodDelete, alice, Allow},
		{"stranger patch", http.MethodPatch, bob, Forbidden},
		{"stranger delete", http.MethodDelete, bob, Forbidden},
		{"anonymous delete", http.MethodDelete, nil, Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasObjectPermission(tt.method, tt.principal, ownerID); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	bob := &utils.UserClaims{UserID: 2, Username: "bob"}
	owner := uint(1)

	if got := Check(http.MethodPost, bob, nil); got != Allow {
		t.Errorf("create without target = %v, want allow", got)
	}
	if got := Check(http.MethodPost, nil, nil); got != Unauthenticated {
		t.Errorf("anonymous create = %v, want unauthenticated", got)
	}
	if got := Check(http.MethodPut, bob, &owner); got != Forbidden {
		t.Errorf("stranger update = %v, want forbidden", got)
	}
	if got := Check(http.MethodGet, nil, &owner); got != Allow {
		t.Errorf("anonymous read = %v, want allow", got)
	}
}
