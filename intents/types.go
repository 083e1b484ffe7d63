package intents

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by intent loading and validation.
// All of them are fatal for the run: the engine refuses to start on a
// universe it cannot fully interpret (a silently skipped intent would
// make the MUS/MSS enumeration unsound).
var (
	// ErrUnknownKind indicates a variant tag that is not one of
	// simple / path_preference / ECMP (or an accepted alias).
	ErrUnknownKind = errors.New("intents: unknown intent kind")

	// ErrBadRecord indicates a record whose arity or element types do
	// not match its variant tag.
	ErrBadRecord = errors.New("intents: malformed intent record")

	// ErrBadPath indicates a declared path with fewer than two hops or
	// with a repeated adjacent router.
	ErrBadPath = errors.New("intents: malformed path")

	// ErrEndpointMismatch indicates that a declared path does not run
	// between the intent's fixed src/dst endpoints.
	ErrEndpointMismatch = errors.New("intents: path endpoints do not match intent endpoints")

	// ErrEmptyID indicates an intent with an empty identifier.
	ErrEmptyID = errors.New("intents: empty intent id")

	// ErrDuplicateID indicates two intents sharing one identifier.
	ErrDuplicateID = errors.New("intents: duplicate intent id")

	// ErrBadECMP indicates an ECMP intent with fewer than two paths or
	// with duplicate paths.
	ErrBadECMP = errors.New("intents: ECMP intent needs at least two distinct paths")

	// ErrBadAnyPath indicates an any-path intent with no paths or with
	// duplicate paths.
	ErrBadAnyPath = errors.New("intents: any-path intent needs at least one path, all distinct")

	// ErrBadPreference indicates a path-preference intent whose primary
	// and secondary paths are identical.
	ErrBadPreference = errors.New("intents: preference primary and secondary paths are identical")
)

// Path is an ordered sequence of router names with fixed endpoints.
type Path []string

// Src returns the first router on the path.
func (p Path) Src() string { return p[0] }

// Dst returns the last router on the path.
func (p Path) Dst() string { return p[len(p)-1] }

// Equal reports whether p and q visit the same routers in the same order.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// Key returns a canonical string form of the path, usable as a map key.
func (p Path) Key() string { return strings.Join(p, "→") }

// validate checks arity and adjacent-hop sanity.
func (p Path) validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: need at least src and dst, got %d hop(s)", ErrBadPath, len(p))
	}
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1] {
			return fmt.Errorf("%w: repeated router %q", ErrBadPath, p[i])
		}
	}

	return nil
}

// Intent is the closed sum of the three supported variants.
// Only Simple, PathPreference and ECMP implement it.
type Intent interface {
	// ID returns the intent's identifier as loaded.
	ID() string
	// Src returns the fixed source endpoint shared by all declared paths.
	Src() string
	// Dst returns the fixed destination endpoint.
	Dst() string
	// DeclaredPaths returns every path named by the intent, in
	// declaration order. The slice must be treated as read-only.
	DeclaredPaths() []Path

	validate() error
}

// Simple requires Path to be the unique shortest path between its
// endpoints under the solved weight assignment.
type Simple struct {
	IntentID string
	Path     Path
}

// ID implements Intent.
func (s Simple) ID() string { return s.IntentID }

// Src implements Intent.
func (s Simple) Src() string { return s.Path.Src() }

// Dst implements Intent.
func (s Simple) Dst() string { return s.Path.Dst() }

// DeclaredPaths implements Intent.
func (s Simple) DeclaredPaths() []Path { return []Path{s.Path} }

func (s Simple) validate() error {
	return s.Path.validate()
}

// AnyPath requires every shortest path between its endpoints to be one
// of Paths. Any declared path may end up carrying the traffic;
// undeclared paths must not.
type AnyPath struct {
	IntentID string
	Paths    []Path
}

// ID implements Intent.
func (a AnyPath) ID() string { return a.IntentID }

// Src implements Intent.
func (a AnyPath) Src() string { return a.Paths[0].Src() }

// Dst implements Intent.
func (a AnyPath) Dst() string { return a.Paths[0].Dst() }

// DeclaredPaths implements Intent.
func (a AnyPath) DeclaredPaths() []Path { return a.Paths }

func (a AnyPath) validate() error {
	if len(a.Paths) == 0 {
		return ErrBadAnyPath
	}
	seen := make(map[string]struct{}, len(a.Paths))
	for _, p := range a.Paths {
		if err := p.validate(); err != nil {
			return err
		}
		if p.Src() != a.Paths[0].Src() || p.Dst() != a.Paths[0].Dst() {
			return fmt.Errorf("%w: %s vs %s", ErrEndpointMismatch, p.Key(), a.Paths[0].Key())
		}
		if _, dup := seen[p.Key()]; dup {
			return fmt.Errorf("%w: duplicate path %s", ErrBadAnyPath, p.Key())
		}
		seen[p.Key()] = struct{}{}
	}

	return nil
}

// PathPreference requires Primary to be the unique shortest path and
// Secondary to be strictly next (strictly longer than Primary, strictly
// shorter than every other path).
type PathPreference struct {
	IntentID  string
	Primary   Path
	Secondary Path
}

// ID implements Intent.
func (p PathPreference) ID() string { return p.IntentID }

// Src implements Intent.
func (p PathPreference) Src() string { return p.Primary.Src() }

// Dst implements Intent.
func (p PathPreference) Dst() string { return p.Primary.Dst() }

// DeclaredPaths implements Intent.
func (p PathPreference) DeclaredPaths() []Path { return []Path{p.Primary, p.Secondary} }

func (p PathPreference) validate() error {
	if err := p.Primary.validate(); err != nil {
		return err
	}
	if err := p.Secondary.validate(); err != nil {
		return err
	}
	if p.Primary.Equal(p.Secondary) {
		return ErrBadPreference
	}
	if p.Primary.Src() != p.Secondary.Src() || p.Primary.Dst() != p.Secondary.Dst() {
		return fmt.Errorf("%w: primary %s vs secondary %s",
			ErrEndpointMismatch, p.Primary.Key(), p.Secondary.Key())
	}

	return nil
}

// ECMP requires Paths to be exactly the set of shortest paths between
// the endpoints: all declared paths tie, and nothing else does.
type ECMP struct {
	IntentID string
	Paths    []Path
}

// ID implements Intent.
func (e ECMP) ID() string { return e.IntentID }

// Src implements Intent.
func (e ECMP) Src() string { return e.Paths[0].Src() }

// Dst implements Intent.
func (e ECMP) Dst() string { return e.Paths[0].Dst() }

// DeclaredPaths implements Intent.
func (e ECMP) DeclaredPaths() []Path { return e.Paths }

func (e ECMP) validate() error {
	if len(e.Paths) < 2 {
		return ErrBadECMP
	}
	seen := make(map[string]struct{}, len(e.Paths))
	for _, p := range e.Paths {
		if err := p.validate(); err != nil {
			return err
		}
		if p.Src() != e.Paths[0].Src() || p.Dst() != e.Paths[0].Dst() {
			return fmt.Errorf("%w: %s vs %s", ErrEndpointMismatch, p.Key(), e.Paths[0].Key())
		}
		if _, dup := seen[p.Key()]; dup {
			return fmt.Errorf("%w: duplicate path %s", ErrBadECMP, p.Key())
		}
		seen[p.Key()] = struct{}{}
	}

	return nil
}
