// Package resolver turns unresolved AST type and identifier references into
// concrete program entities and types, driving generic monomorphization on
// demand.
package resolver

import (
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/token"
)

// Resolver implements program.TypeResolver and exposes the broader
// identifier/property/element resolution surface the binder and later
// compilation passes use.
//
// Monomorphization cycles (`class Node<T> { next: Node<T>; }`) are broken by
// caching each instance on its prototype before resolving its base type or
// members, not by a separate in-progress set: a recursive request for the
// same instantiation finds the partially-built instance already cached.
type Resolver struct {
	Program *program.Program
}

// New builds a Resolver over prog and registers it as prog's TypeResolver.
func New(prog *program.Program) *Resolver {
	r := &Resolver{Program: prog}
	prog.SetResolver(r)
	return r
}

func (r *Resolver) report(code diagnostics.Code, rng token.Range, args ...string) {
	r.Program.Diagnostics.Report(code, rng, args...)
}
