package resolver

import (
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/mangle"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/token"
	"github.com/tsstack/binder/internal/types"
)

// Element is what an expression resolves to: exactly one of Local (a
// function-local, which carries no program-level identity of its own) or
// Entity (every other reference).
type Element struct {
	Local  *program.Local
	Entity program.Entity
}

func localElement(l *program.Local) Element  { return Element{Local: l} }
func entityElement(e program.Entity) Element { return Element{Entity: e} }

// resolveIdentifier resolves a bare name in value position using the full
// scope order: the enclosing function's locals and parameters first, then
// the chain of enclosing namespaces from innermost to outermost, then the
// declaring file's own scope, then the global scope.
func (r *Resolver) resolveIdentifier(name string, fn *program.Function, namespace program.Entity, source *ast.SourceFile, rng token.Range, reportNotFound bool) (Element, bool) {
	if fn != nil {
		if loc, ok := fn.Locals[name]; ok {
			return localElement(loc), true
		}
	}

	for ns := namespace; ns != nil; ns = ns.Namespace() {
		qualified := mangle.StaticMember(ns.InternalName(), name)
		if e, ok := r.Program.LookupGlobal(qualified); ok {
			return entityElement(e), true
		}
	}

	if source != nil {
		if e, ok := r.Program.LookupGlobal(program.FileQualifiedName(source, name)); ok {
			return entityElement(e), true
		}
	}

	if e, ok := r.Program.LookupGlobal(name); ok {
		return entityElement(e), true
	}

	if reportNotFound {
		r.report(diagnostics.CannotFindName, rng, name)
	}
	return Element{}, false
}

// resolveThis resolves `this` inside fn to its enclosing class, reporting
// ThisCannotBeReferencedHere when fn is nil or is not an instance method.
func (r *Resolver) resolveThis(fn *program.Function, rng token.Range, reportNotFound bool) (Element, bool) {
	if fn == nil || !fn.IsInstanceMethod() {
		if reportNotFound {
			r.report(diagnostics.ThisCannotBeReferencedHere, rng)
		}
		return Element{}, false
	}
	return entityElement(fn.InstanceMethodOf), true
}

// resolvePropertyAccess resolves `base.name` against an already-resolved
// base element. Only a MemberContainer instance (Class/Interface) or a
// Namespace can carry properties; anything else reports
// Property_0_does_not_exist_on_type_1.
func (r *Resolver) resolvePropertyAccess(base Element, name string, rng token.Range, reportNotFound bool) (Element, bool) {
	if base.Entity == nil {
		if reportNotFound {
			r.report(diagnostics.PropertyDoesNotExistOnType, rng, name, "")
		}
		return Element{}, false
	}

	switch owner := base.Entity.(type) {
	case *program.Namespace:
		if e, ok := r.Program.LookupGlobal(mangle.StaticMember(owner.InternalName(), name)); ok {
			return entityElement(e), true
		}
	case *program.Class:
		if e, ok := r.lookupMember(owner.Prototype, name); ok {
			return entityElement(e), true
		}
		if owner.BaseClass != nil {
			return r.resolvePropertyAccess(entityElement(owner.BaseClass), name, rng, reportNotFound)
		}
	case *program.Interface:
		if e, ok := r.lookupMember(owner.Prototype, name); ok {
			return entityElement(e), true
		}
		if owner.BaseInterface != nil {
			return r.resolvePropertyAccess(entityElement(owner.BaseInterface), name, rng, reportNotFound)
		}
	}

	if reportNotFound {
		r.report(diagnostics.PropertyDoesNotExistOnType, rng, name, base.Entity.InternalName())
	}
	return Element{}, false
}

// lookupMember checks a member container's static scope (Elements, qualified
// by the prototype's internal name, which is how the binder places static
// fields and methods for every instantiation), its instance scope
// (InstanceMembers, on the shared prototype), and finally the prototype's
// member map, where the binder stores every accessor Property under its
// bare name. Instance members live once on the prototype since their type
// is resolved lazily per concrete instance instead.
func (r *Resolver) lookupMember(prototype program.MemberContainer, name string) (program.Entity, bool) {
	if e, ok := r.Program.LookupGlobal(mangle.StaticMember(prototype.InternalName(), name)); ok {
		return e, true
	}
	if e, ok := prototype.InstanceMembers()[name]; ok {
		return e, true
	}
	if e, ok := prototype.Members()[name]; ok {
		return e, true
	}
	return nil, false
}

// resolveElement dispatches over the four expression shapes the AST
// supports: Identifier, ThisExpression, PropertyAccessExpression, and
// NewExpression (whose callee must itself resolve to a type-bearing
// entity).
func (r *Resolver) resolveElement(expr ast.Expression, fn *program.Function, namespace program.Entity, source *ast.SourceFile, contextualTypeArguments map[string]types.Type, reportNotFound bool) (Element, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return r.resolveIdentifier(e.Name, fn, namespace, source, e.Rng, reportNotFound)
	case *ast.ThisExpression:
		return r.resolveThis(fn, e.Rng, reportNotFound)
	case *ast.PropertyAccessExpression:
		base, ok := r.resolveElement(e.Expression, fn, namespace, source, contextualTypeArguments, reportNotFound)
		if !ok {
			return Element{}, false
		}
		return r.resolvePropertyAccess(base, e.Property.Name, e.Rng, reportNotFound)
	case *ast.NewExpression:
		return r.resolveNewExpression(e, fn, namespace, source, contextualTypeArguments, reportNotFound)
	default:
		if reportNotFound {
			r.report(diagnostics.CannotFindName, expr.Range(), "")
		}
		return Element{}, false
	}
}

// resolveNewExpression resolves `new Callee<Args>(...)`: the callee must
// name a ClassPrototype, monomorphized against the supplied type arguments
// (or, absent any, zero arguments).
func (r *Resolver) resolveNewExpression(n *ast.NewExpression, fn *program.Function, namespace program.Entity, source *ast.SourceFile, contextualTypeArguments map[string]types.Type, reportNotFound bool) (Element, bool) {
	calleeName, ok := calleeIdentifierName(n.Callee)
	if !ok {
		if reportNotFound {
			r.report(diagnostics.CannotFindName, n.Rng, "")
		}
		return Element{}, false
	}

	entity, ok := r.lookupTypeEntity(calleeName, source)
	if !ok {
		if reportNotFound {
			r.report(diagnostics.CannotFindName, n.Rng, calleeName)
		}
		return Element{}, false
	}

	prototype, ok := entity.(*program.ClassPrototype)
	if !ok {
		if reportNotFound {
			r.report(diagnostics.CannotFindName, n.Rng, calleeName)
		}
		return Element{}, false
	}

	typeArgs, ok := r.ResolveInclTypeArguments(n.TypeArguments, source, contextualTypeArguments, len(prototype.Declaration.TypeParameters), n.Rng, reportNotFound)
	if !ok {
		return Element{}, false
	}

	return entityElement(r.ResolveClass(prototype, typeArgs)), true
}

func calleeIdentifierName(expr ast.Expression) (string, bool) {
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}
