package session

import "context"

// Action is what a route guard tells the caller to do.
type Action int

const (
	Allow Action = iota
	// Wait means the gate has not read its persisted state yet.
	Wait
	ToLogin
	ToRemembered
)

func (a Action) String() string {
	switch a {
	case Wait:
		return "wait"
	case ToLogin:
		return "to-login"
	case ToRemembered:
		return "to-remembered"
	}
	return "allow"
}

// IsLoginRoute reports whether path is the login or signup page.
func IsLoginRoute(path string) bool {
	return path == LoginPath || path == SignupPath
}

// Decide is the route guard as a pure function of gate state.
func Decide(s State, path string, protected bool) Action {
	switch {
	case s.Checking:
		return Wait
	case protected && !s.LoggedIn:
		return ToLogin
	case s.LoggedIn && IsLoginRoute(path):
		return ToRemembered
	}
	return Allow
}

// Decision is a resolved guard outcome.
type Decision struct {
	Action   Action
	Location string
}

// Guard applies Decide and performs its side effects: remembering the
// requested path before sending the visitor to login, and consuming it when
// a logged-in visitor lands on the login page.
func (g *Gate) Guard(ctx context.Context, path string, protected bool) Decision {
	switch a := Decide(g.State(), path, protected); a {
	case ToLogin:
		g.RememberPath(ctx, path)
		return Decision{Action: a, Location: LoginPath}
	case ToRemembered:
		return Decision{Action: a, Location: g.TakeRedirect(ctx)}
	default:
		return Decision{Action: a}
	}
}
