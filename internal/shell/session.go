package shell

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/runger/kubesh/internal/kubectl"
)

// Session carries the state a command handler needs: which context and
// namespace the user is currently operating in. It is passed explicitly
// rather than held in package state, so handlers stay testable and two
// shells never share mutable state.
type Session struct {
	ID        string
	Context   string
	Namespace string
	StartedAt time.Time
}

// NewSession creates a session seeded from the tool's current context and
// namespace. A cluster-less environment (no current context) is not an
// error; the fields stay empty and the prompt shows them as unset.
func NewSession(ctx context.Context, client kubectl.Client) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	if current, err := client.CurrentContext(ctx); err == nil {
		s.Context = current
	}
	if ns, err := client.CurrentNamespace(ctx); err == nil {
		s.Namespace = ns
	}
	return s
}
