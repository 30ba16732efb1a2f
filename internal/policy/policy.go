// Package policy decides what an identity may do on each class of route and
// which publications a listing may show.
package policy

import (
	"net/http"

	"maqola/platform/internal/model"
	"maqola/platform/internal/store"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}

	return "anonymous"
}

func StateOf(u *model.User) State {
	if u == nil {
		return Anonymous
	}

	return Authenticated
}

type RouteClass int

const (
	// Public routes are open to everyone (home, publication detail)
	Public RouteClass = iota
	// AuthEntry routes only make sense without a session (login, register)
	AuthEntry
	// Protected routes need a session (dashboard, writing and publishing)
	Protected
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Reject
)

// Decision is what to do with a request. Redirect carries a target
// (answered with 303), Reject carries a status.
type Decision struct {
	Outcome  Outcome
	Location string
	Status   int
}

// Decide applies the route table. Anonymous visitors of protected pages are
// sent to the login form, while anonymous mutations are refused outright
// since there's nothing sensible to redirect a form submission to.
func Decide(class RouteClass, state State, method string) Decision {
	switch class {
	case AuthEntry:
		if state == Authenticated {
			return Decision{Outcome: Redirect, Location: DashboardPath, Status: http.StatusSeeOther}
		}
	case Protected:
		if state == Anonymous {
			if method == http.MethodGet || method == http.MethodHead {
				return Decision{Outcome: Redirect, Location: LoginPath, Status: http.StatusSeeOther}
			}

			return Decision{Outcome: Reject, Status: http.StatusUnauthorized}
		}
	}

	return Decision{Outcome: Allow}
}

// HomeScope lists every publication regardless of who is asking
func HomeScope() store.PublicationFilter {
	return store.PublicationFilter{}
}

// DashboardScope limits a listing to publications written by u
func DashboardScope(u *model.User) store.PublicationFilter {
	id := u.ID
	return store.PublicationFilter{AuthorID: &id}
}
