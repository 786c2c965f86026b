// Package permissions maps blog actions to the caller capability they need.
//
// Authorize is pure: it depends only on its arguments and never touches the
// store. Ownership is checked against an owner id the caller has already loaded.
package permissions

import (
	"github.com/google/uuid"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/domain/user"
)

type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionLike     Action = "like"
	ActionUnlike   Action = "unlike"
	ActionComment  Action = "comment"
)

type Capability string

const (
	CapabilityAnonymousRead      Capability = "anonymous-read"
	CapabilityAuthenticatedWrite Capability = "authenticated-write"
	CapabilityOwnerWrite         Capability = "owner-write"
)

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

var table = map[Action]Capability{
	ActionList:     CapabilityAnonymousRead,
	ActionRetrieve: CapabilityAnonymousRead,
	ActionCreate:   CapabilityAuthenticatedWrite,
	ActionLike:     CapabilityAuthenticatedWrite,
	ActionUnlike:   CapabilityAuthenticatedWrite,
	ActionComment:  CapabilityAuthenticatedWrite,
	ActionUpdate:   CapabilityOwnerWrite,
	ActionDelete:   CapabilityOwnerWrite,
}

// CapabilityFor returns the capability action requires. Unknown actions report ok=false.
func CapabilityFor(action Action) (Capability, bool) {
	c, ok := table[action]
	return c, ok
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

// Err converts a denial into the matching typed error; nil when allowed.
func (d Decision) Err(op string) error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return domainagg.Unauthenticated(op)
	}
	return domainagg.Forbidden(op, "caller may not perform this action")
}

// Authorize decides whether caller may perform action. owner is the author
// of the target post; when nil the ownership check is skipped, which lets
// services authenticate before loading the target. Staff callers pass the
// ownership check. Unknown actions are forbidden.
func Authorize(action Action, caller *user.Identity, owner *uuid.UUID) Decision {
	capability, ok := table[action]
	if !ok {
		return Decision{Reason: ReasonForbidden}
	}
	if capability == CapabilityAnonymousRead {
		return allow
	}
	if caller.IsAnonymous() {
		return Decision{Reason: ReasonUnauthenticated}
	}
	if capability == CapabilityAuthenticatedWrite || owner == nil {
		return allow
	}
	if caller.Staff || caller.ID == *owner {
		return allow
	}
	return Decision{Reason: ReasonForbidden}
}
