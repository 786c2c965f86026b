package permissions

import (
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/domain/user"
)

func TestAuthorizeTable(t *testing.T) {
	author := &user.Identity{ID: uuid.New(), Username: "author"}
	other := &user.Identity{ID: uuid.New(), Username: "other"}
	staff := &user.Identity{ID: uuid.New(), Username: "staff", Staff: true}
	owner := author.ID

	cases := []struct {
		name   string
		action Action
		caller *user.Identity
		owner  *uuid.UUID
		want   Decision
	}{
		{"anonymous list", ActionList, nil, nil, allow},
		{"anonymous retrieve", ActionRetrieve, &user.Identity{}, nil, allow},
		{"anonymous create", ActionCreate, nil, nil, Decision{Reason: ReasonUnauthenticated}},
		{"anonymous like", ActionLike, nil, nil, Decision{Reason: ReasonUnauthenticated}},
		{"anonymous unlike", ActionUnlike, nil, nil, Decision{Reason: ReasonUnauthenticated}},
		{"anonymous comment", ActionComment, nil, nil, Decision{Reason: ReasonUnauthenticated}},
		{"anonymous update", ActionUpdate, nil, &owner, Decision{Reason: ReasonUnauthenticated}},
		{"authenticated create", ActionCreate, other, nil, allow},
		{"authenticated like", ActionLike, other, nil, allow},
		{"update before load", ActionUpdate, other, nil, allow},
		{"author update", ActionUpdate, author, &owner, allow},
		{"author delete", ActionDelete, author, &owner, allow},
		{"non-author update", ActionUpdate, other, &owner, Decision{Reason: ReasonForbidden}},
		{"non-author delete", ActionDelete, other, &owner, Decision{Reason: ReasonForbidden}},
		{"staff delete", ActionDelete, staff, &owner, allow},
		{"unknown action", Action("archive"), author, &owner, Decision{Reason: ReasonForbidden}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Authorize(tc.action, tc.caller, tc.owner)
			if got != tc.want {
				t.Fatalf("Authorize: want=%+v got=%+v", tc.want, got)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	if err := allow.Err("op"); err != nil {
		t.Fatalf("allowed decision: want=nil got=%v", err)
	}
	if err := (Decision{Reason: ReasonUnauthenticated}).Err("op"); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("unauthenticated decision: got=%v", err)
	}
	if err := (Decision{Reason: ReasonForbidden}).Err("op"); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("forbidden decision: got=%v", err)
	}
}

func TestCapabilityFor(t *testing.T) {
	if c, ok := CapabilityFor(ActionUpdate); !ok || c != CapabilityOwnerWrite {
		t.Fatalf("update capability: got=%s ok=%v", c, ok)
	}
	if c, ok := CapabilityFor(ActionList); !ok || c != CapabilityAnonymousRead {
		t.Fatalf("list capability: got=%s ok=%v", c, ok)
	}
	if _, ok := CapabilityFor(Action("nope")); ok {
		t.Fatalf("unknown action should not resolve")
	}
}
