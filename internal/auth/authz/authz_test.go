package authz

import (
	"testing"

	"github.com/louisbranch/taskhub/internal/auth/user"
	"github.com/louisbranch/taskhub/internal/task"
)

var (
	owner    = Actor{UserID: "owner-1", Role: user.RoleUser, Authenticated: true}
	stranger = Actor{UserID: "other-1", Role: user.RoleUser, Authenticated: true}
	admin    = Actor{UserID: "admin-1", Role: user.RoleAdmin, Authenticated: true}
)

func ownedTask() *task.Task {
	return &task.Task{ID: "task-1", Title: "write report", OwnerID: "owner-1"}
}

func TestReadsAreAlwaysAllowed(t *testing.T) {
	t.Parallel()

	for _, actor := range []Actor{Anonymous(), owner, stranger, admin} {
		for _, op := range []Operation{OpList, OpRetrieve} {
			if got := Authorize(actor, op, nil); got != Allow {
				t.Fatalf("Authorize(%+v, %v, nil) = %v, want Allow", actor, op, got)
			}
		}
	}
}

func TestWritesRequireAuthentication(t *testing.T) {
	t.Parallel()

	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		if got := Authorize(Anonymous(), op, ownedTask()); got != DenyUnauthenticated {
			t.Fatalf("Authorize(anonymous, %v) = %v, want DenyUnauthenticated", op, got)
		}
	}
	// Authentication is checked before existence: anonymous write on a
	// missing id still yields 401, not 404.
	if got := Authorize(Anonymous(), OpDelete, nil); got != DenyUnauthenticated {
		t.Fatalf("Authorize(anonymous, delete, nil) = %v, want DenyUnauthenticated", got)
	}
}

func TestCreateRequiresOnlyAuthentication(t *testing.T) {
	t.Parallel()

	if got := Authorize(owner, OpCreate, nil); got != Allow {
		t.Fatalf("Authorize(owner, create) = %v, want Allow", got)
	}
	if got := Authorize(stranger, OpCreate, nil); got != Allow {
		t.Fatalf("Authorize(stranger, create) = %v, want Allow", got)
	}
}

func TestMissingTaskIsNotFoundBeforeOwnership(t *testing.T) {
	t.Parallel()

	for _, actor := range []Actor{owner, stranger, admin} {
		for _, op := range []Operation{OpUpdate, OpDelete} {
			if got := Authorize(actor, op, nil); got != DenyNotFound {
				t.Fatalf("Authorize(%+v, %v, nil) = %v, want DenyNotFound", actor, op, got)
			}
		}
	}
}

func TestNonOwnerGetsForbiddenNeverNotFound(t *testing.T) {
	t.Parallel()

	for _, op := range []Operation{OpUpdate, OpDelete} {
		if got := Authorize(stranger, op, ownedTask()); got != DenyForbidden {
			t.Fatalf("Authorize(stranger, %v) = %v, want DenyForbidden", op, got)
		}
	}
}

func TestOwnerAndAdminMayWrite(t *testing.T) {
	t.Parallel()

	for _, actor := range []Actor{owner, admin} {
		for _, op := range []Operation{OpUpdate, OpDelete} {
			if got := Authorize(actor, op, ownedTask()); got != Allow {
				t.Fatalf("Authorize(%+v, %v) = %v, want Allow", actor, op, got)
			}
		}
	}
}

func TestScopeForList(t *testing.T) {
	t.Parallel()

	if got := ScopeFor(Anonymous(), OpList); got != (Scope{}) {
		t.Fatalf("anonymous list scope = %+v, want full set", got)
	}
	if got := ScopeFor(admin, OpList); got != (Scope{}) {
		t.Fatalf("admin list scope = %+v, want full set", got)
	}
	if got := ScopeFor(owner, OpList); got.OwnerID != "owner-1" {
		t.Fatalf("owner list scope = %+v, want owner-scoped", got)
	}
}

func TestScopeForDetailOperationsIsUnrestricted(t *testing.T) {
	t.Parallel()

	// Detail lookups must see the full set so a non-owner hitting an
	// existing task gets 403 rather than 404.
	for _, op := range []Operation{OpRetrieve, OpUpdate, OpDelete} {
		if got := ScopeFor(owner, op); got != (Scope{}) {
			t.Fatalf("ScopeFor(owner, %v) = %+v, want full set", op, got)
		}
	}
}
