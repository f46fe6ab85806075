package program

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/types"
)

// FunctionPrototype is a function or method declaration before any type
// arguments are bound. GENERIC is set iff the declaration carries type
// parameters.
type FunctionPrototype struct {
	Base
	Declaration *ast.FunctionDeclaration
	// Owner is the owning ClassPrototype or InterfacePrototype for a method,
	// nil for a free function or a static method: static methods become
	// FunctionPrototypes with no owner link.
	Owner MemberContainer
	// Source is the declaring file, needed to resolve unqualified parameter
	// and return type references back into this file's scope.
	Source *ast.SourceFile
	// Instances caches monomorphized Functions keyed by
	// typesToString(typeArguments, "", ""); empty string for the
	// non-generic case. For an instance method the key is prefixed with the
	// bound Class's internal name and "#", so each class instance gets its
	// own Function. Append-only; never evicted.
	Instances map[string]*Function
}

func NewFunctionPrototype(prog *Program, name, internalName string, namespace Entity, decl *ast.FunctionDeclaration, owner MemberContainer, source *ast.SourceFile) *FunctionPrototype {
	fp := &FunctionPrototype{
		Base:        newBase(KindFunctionPrototype, name, internalName, namespace, prog),
		Declaration: decl,
		Owner:       owner,
		Source:      source,
		Instances:   make(map[string]*Function),
	}
	if decl != nil && decl.IsGeneric() {
		fp.SetFlag(FlagGeneric)
	}
	return fp
}

// FunctionParameter is one resolved parameter of a monomorphized Function.
type FunctionParameter struct {
	Name        string
	Type        types.Type
	Initializer ast.Expression
}

// Function is a resolved, possibly-monomorphized instance of a
// FunctionPrototype.
type Function struct {
	Base
	Prototype                *FunctionPrototype
	TypeArguments            []types.Type
	Parameters               []FunctionParameter
	ReturnType               types.Type
	InstanceMethodOf         *Class // non-nil iff this is an instance method
	Locals                   map[string]*Local
	AdditionalLocals         []*Local
	ContextualTypeArguments  map[string]types.Type
	InstanceID               uuid.UUID

	breakStack     []int
	nextBreakID    int
	BreakContext   string // decimal id of the innermost break context, "" if none
	tempLocals     map[types.NativeKind][]*Local
	nextLocalIndex int
	anonCounter    int
}

func NewFunction(prog *Program, prototype *FunctionPrototype, internalName string, typeArgs []types.Type, instanceMethodOf *Class) *Function {
	f := &Function{
		Base:                    newBase(KindFunction, prototype.SimpleName(), internalName, prototype.Namespace(), prog),
		Prototype:               prototype,
		TypeArguments:           typeArgs,
		InstanceMethodOf:        instanceMethodOf,
		Locals:                  make(map[string]*Local),
		ContextualTypeArguments: make(map[string]types.Type),
		tempLocals:              make(map[types.NativeKind][]*Local),
		InstanceID:              uuid.New(),
	}
	if instanceMethodOf != nil {
		f.Locals["this"] = &Local{Name: "this", Index: 0, Type: instanceMethodOf.ClassType}
		f.nextLocalIndex = 1
	}
	return f
}

func (f *Function) Members() map[string]Entity { return nil }

// IsInstanceMethod reports whether this function has a bound `this`: its
// locals["this"] entry exists iff InstanceMethodOf is non-nil.
func (f *Function) IsInstanceMethod() bool { return f.InstanceMethodOf != nil }

// AddParameter registers one declared parameter as a Local, continuing the
// index sequence after `this` when present.
func (f *Function) AddParameter(name string, t types.Type) *Local {
	if _, exists := f.Locals[name]; exists {
		panic(diagnostics.NewInternalError("duplicate local %q in function %s", name, f.InternalName()))
	}
	loc := &Local{Name: name, Index: f.nextLocalIndex, Type: t}
	f.nextLocalIndex++
	f.Locals[name] = loc
	return loc
}

// AddLocal registers an additional local beyond the declared parameters. An
// empty name produces an anonymous name `anonymous$<index>`.
// Registering a name already in use is an internal invariant violation.
func (f *Function) AddLocal(t types.Type, name string) *Local {
	if name == "" {
		name = fmt.Sprintf("anonymous$%d", f.anonCounter)
		f.anonCounter++
	} else if _, exists := f.Locals[name]; exists {
		panic(diagnostics.NewInternalError("duplicate local %q in function %s", name, f.InternalName()))
	}
	loc := &Local{Name: name, Index: f.nextLocalIndex, Type: t}
	f.nextLocalIndex++
	f.Locals[name] = loc
	f.AdditionalLocals = append(f.AdditionalLocals, loc)
	return loc
}

// GetTempLocal pops a free temporary of the matching native kind, or
// allocates a fresh one.
func (f *Function) GetTempLocal(t types.Type) *Local {
	nk := types.Native(t, f.Program.Target)
	if list := f.tempLocals[nk]; len(list) > 0 {
		loc := list[len(list)-1]
		f.tempLocals[nk] = list[:len(list)-1]
		return loc
	}
	return f.AddLocal(t, "")
}

// FreeTempLocal returns a temporary to its native kind's free list.
func (f *Function) FreeTempLocal(local *Local) {
	nk := types.Native(local.Type, f.Program.Target)
	f.tempLocals[nk] = append(f.tempLocals[nk], local)
}

// GetAndFreeTempLocal returns a temporary whose lifetime ends immediately: it
// peeks the matching free list (not removing it) rather than allocating a
// fresh local for a value that dies before any reuse could matter, or
// allocates one if the list is empty.
func (f *Function) GetAndFreeTempLocal(t types.Type) *Local {
	nk := types.Native(t, f.Program.Target)
	if list := f.tempLocals[nk]; len(list) > 0 {
		return list[len(list)-1]
	}
	return f.AddLocal(t, "")
}

// EnterBreakContext pushes a fresh, monotonically increasing break context id
// and makes it current.
func (f *Function) EnterBreakContext() string {
	id := f.nextBreakID
	f.nextBreakID++
	f.breakStack = append(f.breakStack, id)
	f.BreakContext = fmt.Sprintf("%d", id)
	return f.BreakContext
}

// LeaveBreakContext pops the current break context, restoring the previous
// one or clearing to "no context" when the stack empties.
func (f *Function) LeaveBreakContext() {
	if len(f.breakStack) == 0 {
		panic(diagnostics.NewInternalError("LeaveBreakContext called with empty break stack in function %s", f.InternalName()))
	}
	f.breakStack = f.breakStack[:len(f.breakStack)-1]
	if len(f.breakStack) > 0 {
		f.BreakContext = fmt.Sprintf("%d", f.breakStack[len(f.breakStack)-1])
	} else {
		f.BreakContext = ""
	}
}

// Finalize clears per-compile transient state after code generation. It
// asserts the break-context stack is empty.
func (f *Function) Finalize() {
	if len(f.breakStack) != 0 {
		panic(diagnostics.NewInternalError("Finalize called with non-empty break stack in function %s", f.InternalName()))
	}
	f.tempLocals = make(map[types.NativeKind][]*Local)
}
