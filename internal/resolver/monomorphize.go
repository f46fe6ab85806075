package resolver

import (
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/types"
)

// contextFor zips a prototype's declared type parameters with concrete type
// arguments, producing the substitution map used to resolve member and base
// type references inside the instantiation.
func contextFor(paramNames []string, typeArgs []types.Type) map[string]types.Type {
	ctx := make(map[string]types.Type, len(paramNames))
	for i, name := range paramNames {
		if i < len(typeArgs) {
			ctx[name] = typeArgs[i]
		}
	}
	return ctx
}

// ResolveClass returns the cached Class for prototype+typeArgs, monomorphizing
// it on first request. The new instance is cached before its base class is
// resolved, so a self-referencing generic class (`class Node<T> { next:
// Node<T>; }`) finds the in-progress instance instead of recursing forever.
func (r *Resolver) ResolveClass(prototype *program.ClassPrototype, typeArgs []types.Type) *program.Class {
	key := types.TypesToString(typeArgs, "", "")
	if cached, ok := prototype.Instances[key]; ok {
		return cached
	}

	internalName := prototype.InternalName()
	if len(typeArgs) > 0 {
		internalName += types.TypesToString(typeArgs, "<", ">")
	}

	class := program.NewClass(r.Program, prototype, internalName, typeArgs, nil)
	prototype.Instances[key] = class
	r.Program.DefineType(internalName, class.ClassType)

	paramNames := make([]string, len(prototype.Declaration.TypeParameters))
	for i, tp := range prototype.Declaration.TypeParameters {
		paramNames[i] = tp.Name
	}
	class.ContextualTypeArguments = contextFor(paramNames, typeArgs)

	if prototype.Declaration.BaseClass != nil {
		if t, ok := r.ResolveTypeNode(prototype.Declaration.BaseClass, prototype.Source, class.ContextualTypeArguments, true); ok {
			if ct, ok := t.(*types.ClassType); ok {
				if baseClass, ok := ct.Owner.(*program.Class); ok {
					class.BaseClass = baseClass
				}
			}
		}
	}

	return class
}

// ResolveInterface mirrors ResolveClass for interface declarations.
func (r *Resolver) ResolveInterface(prototype *program.InterfacePrototype, typeArgs []types.Type) *program.Interface {
	key := types.TypesToString(typeArgs, "", "")
	if cached, ok := prototype.Instances[key]; ok {
		return cached
	}

	internalName := prototype.InternalName()
	if len(typeArgs) > 0 {
		internalName += types.TypesToString(typeArgs, "<", ">")
	}

	iface := program.NewInterface(r.Program, prototype, internalName, typeArgs, nil)
	prototype.Instances[key] = iface
	r.Program.DefineType(internalName, iface.InterfaceType)

	paramNames := make([]string, len(prototype.Declaration.TypeParameters))
	for i, tp := range prototype.Declaration.TypeParameters {
		paramNames[i] = tp.Name
	}
	iface.ContextualTypeArguments = contextFor(paramNames, typeArgs)

	if prototype.Declaration.BaseInterface != nil {
		if t, ok := r.ResolveTypeNode(prototype.Declaration.BaseInterface, prototype.Source, iface.ContextualTypeArguments, true); ok {
			if it, ok := t.(*types.InterfaceType); ok {
				if base, ok := it.Owner.(*program.Interface); ok {
					iface.BaseInterface = base
				}
			}
		}
	}

	return iface
}

// ResolveFunction monomorphizes prototype against typeArgs (and, for an
// instance method, the concrete class it is bound to), caching the result on
// the prototype. instanceMethodOf is nil for free functions and static
// methods.
func (r *Resolver) ResolveFunction(prototype *program.FunctionPrototype, typeArgs []types.Type, instanceMethodOf *program.Class) *program.Function {
	key := types.TypesToString(typeArgs, "", "")
	if instanceMethodOf != nil {
		key = instanceMethodOf.InternalName() + "#" + key
	}
	if cached, ok := prototype.Instances[key]; ok {
		return cached
	}

	internalName := prototype.InternalName()
	if len(typeArgs) > 0 {
		internalName += types.TypesToString(typeArgs, "<", ">")
	}

	fn := program.NewFunction(r.Program, prototype, internalName, typeArgs, instanceMethodOf)
	prototype.Instances[key] = fn

	paramNames := make([]string, len(prototype.Declaration.TypeParameters))
	for i, tp := range prototype.Declaration.TypeParameters {
		paramNames[i] = tp.Name
	}
	fn.ContextualTypeArguments = contextFor(paramNames, typeArgs)
	if instanceMethodOf != nil {
		for k, v := range instanceMethodOf.ContextualTypeArguments {
			if _, exists := fn.ContextualTypeArguments[k]; !exists {
				fn.ContextualTypeArguments[k] = v
			}
		}
	}

	for _, param := range prototype.Declaration.Parameters {
		// An unannotated parameter has no TypeNode to resolve at all: this
		// binder performs no type inference, so it simply fails to resolve
		// rather than guessing a type.
		if param.Type == nil {
			continue
		}
		t, ok := r.ResolveTypeNode(param.Type, prototype.Source, fn.ContextualTypeArguments, true)
		if !ok {
			continue
		}
		fn.AddParameter(param.Name, t)
		fn.Parameters = append(fn.Parameters, program.FunctionParameter{Name: param.Name, Type: t, Initializer: param.Initializer})
	}

	// Setter prototypes always return void regardless of any declared return
	// annotation; every other kind resolves its declared return type, failing
	// (leaving ReturnType nil) when unannotated rather than inferring one.
	if prototype.Declaration.IsSetter() {
		fn.ReturnType = types.Void
	} else if prototype.Declaration.ReturnType != nil {
		if t, ok := r.ResolveTypeNode(prototype.Declaration.ReturnType, prototype.Source, fn.ContextualTypeArguments, true); ok {
			fn.ReturnType = t
		}
	}

	return fn
}
