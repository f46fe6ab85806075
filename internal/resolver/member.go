package resolver

import (
	"github.com/tsstack/binder/internal/mangle"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/types"
)

// ResolveField returns the Field for fieldProto on cls, resolving its type
// against cls's contextual type arguments and caching the result the first
// time it is requested. Field resolution is deliberately lazy: a class's
// instance width is always one pointer regardless of what its fields hold,
// so nothing needs a field's type until something actually reads or writes
// it, which sidesteps most generic self-reference cycles
// (`class Node<T> { next: Node<T>; }` never needs `next`'s type to finish
// building `Node<T>` itself).
func (r *Resolver) ResolveField(cls *program.Class, fieldProto *program.FieldPrototype) *program.Field {
	if f, ok := cls.Fields()[fieldProto.SimpleName()]; ok {
		return f
	}

	internalName := mangle.InstanceMember(cls.InternalName(), fieldProto.SimpleName())
	t, ok := r.ResolveTypeNode(fieldProto.Declaration.Type, fieldProto.Owner.SourceFile(), cls.ContextualTypeArguments, true)
	if !ok {
		t = types.I32
	}

	f := program.NewField(r.Program, fieldProto, internalName, cls, t)
	cls.Fields()[fieldProto.SimpleName()] = f
	return f
}

// ResolveMethod monomorphizes the method named name on cls, bound as an
// instance method, with no extra type arguments beyond cls's own. Returns
// false if no such method exists on cls or any of its base classes.
func (r *Resolver) ResolveMethod(cls *program.Class, name string) (*program.Function, bool) {
	e, ok := cls.Prototype.InstanceMembers()[name]
	if !ok {
		if cls.BaseClass != nil {
			return r.ResolveMethod(cls.BaseClass, name)
		}
		return nil, false
	}
	proto, ok := e.(*program.FunctionPrototype)
	if !ok {
		return nil, false
	}
	return r.ResolveFunction(proto, nil, cls), true
}
