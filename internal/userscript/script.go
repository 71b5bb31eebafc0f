package userscript

import (
	"sync"

	"github.com/vvka-141/usheader/internal/metadata"
)

// UserScript is the header model of one script.
// It is safe for concurrent use.
type UserScript struct {
	mu      sync.Mutex
	meta    *metadata.Metadata
	state   renderState
	cached  string
	renders int
	frozen  bool
}

// New creates a script from validated metadata. The metadata is copied, so
// later changes by the caller do not leak into the script.
// It panics when meta is nil.
func New(meta *metadata.Metadata) *UserScript {
	if meta == nil {
		panic(&metadata.InvariantError{Op: "userscript.New", Message: "metadata is nil"})
	}
	return &UserScript{
		meta:  meta.Clone(),
		state: stateDirty,
	}
}

// Grants returns a copy of the current grant set. The boolean is false when
// the script has no grants configured at all.
func (s *UserScript) Grants() (metadata.GrantSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.meta.Sets.Grants == nil {
		return nil, false
	}
	return s.meta.Sets.Grants.Clone(), true
}

// SetGrants replaces the grant set. A set equal to the current one leaves the
// cached header valid. Calling SetGrants on a frozen script panics.
func (s *UserScript) SetGrants(grants metadata.GrantSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		panic(&metadata.InvariantError{Op: "SetGrants", Message: "grants changed after the script was frozen"})
	}

	current := s.meta.Sets.Grants
	if current != nil && current.Equal(grants) {
		return
	}
	s.meta.Sets.Grants = grants.Clone()
	s.state = stateDirty
}

// Freeze ends the mutation window. Any later SetGrants call panics.
func (s *UserScript) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (s *UserScript) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// Header returns the rendered metadata block, rebuilding it only when the
// model changed since the last call.
func (s *UserScript) Header() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateClean {
		return s.cached
	}
	s.cached = render(s.meta)
	s.renders++
	s.state = stateClean
	return s.cached
}

// String implements fmt.Stringer and is equivalent to Header.
func (s *UserScript) String() string {
	return s.Header()
}

// Renders returns how many times the header text has been rebuilt.
func (s *UserScript) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

// Metadata returns a copy of the model, including the current grants.
func (s *UserScript) Metadata() *metadata.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta.Clone()
}
