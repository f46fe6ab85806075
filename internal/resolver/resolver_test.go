package resolver

import (
	"testing"

	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/binder"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/testfixture"
	"github.com/tsstack/binder/internal/token"
	"github.com/tsstack/binder/internal/types"
)

func newProgram() *program.Program {
	return program.New(types.WASM32)
}

func sourceByPath(sources []*ast.SourceFile, path string) *ast.SourceFile {
	for _, s := range sources {
		if s.Path == path {
			return s
		}
	}
	return nil
}

// Invariant 3: resolveIdentifier prefers a local over a namespace member over
// a file-scope entity over a global entity of the same simple name.
func TestScopeOrder(t *testing.T) {
	prog := newProgram()
	sources := testfixture.Load(prog, `-- m.ts --
var x: i32
namespace N {
	var x: i32
	function f(x: i32): void
}
-- g.ts --
@global
var x: i32
-- h.ts --
function unrelated(): void
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	sourceM := sourceByPath(sources, "m")
	sourceH := sourceByPath(sources, "h")

	nsEntity, ok := prog.LookupGlobal("m/N")
	if !ok {
		t.Fatal(`elements["m/N"] missing`)
	}

	fProto, ok := nsEntity.Members()["f"].(*program.FunctionPrototype)
	if !ok {
		t.Fatal("N.f prototype missing")
	}
	fn := r.ResolveFunction(fProto, nil, nil)

	// Local beats everything.
	el, ok := r.resolveIdentifier("x", fn, nsEntity, sourceM, token.Range{}, true)
	if !ok || el.Local == nil {
		t.Fatal("expected a local hit for x inside N.f")
	}
	if el.Local != fn.Locals["x"] {
		t.Error("resolved local does not match fn.Locals[\"x\"]")
	}

	// Namespace member beats file scope and global scope.
	nsMember, ok := nsEntity.Members()["x"]
	if !ok {
		t.Fatal("N.x missing")
	}
	el, ok = r.resolveIdentifier("x", nil, nsEntity, sourceM, token.Range{}, true)
	if !ok || el.Entity != nsMember {
		t.Errorf("expected namespace member x, got %+v", el)
	}

	// File scope beats global scope.
	fileMember, ok := prog.LookupGlobal("m/x")
	if !ok {
		t.Fatal("m/x missing")
	}
	el, ok = r.resolveIdentifier("x", nil, nil, sourceM, token.Range{}, true)
	if !ok || el.Entity != fileMember {
		t.Errorf("expected file-scope x, got %+v", el)
	}

	// Falling through to global scope when no local/namespace/file match exists.
	globalMember, ok := prog.LookupGlobal("x")
	if !ok {
		t.Fatal("bare global x missing")
	}
	el, ok = r.resolveIdentifier("x", nil, nil, sourceH, token.Range{}, true)
	if !ok || el.Entity != globalMember {
		t.Errorf("expected bare global x, got %+v", el)
	}
}

// Invariant 6: two calls to FunctionPrototype.resolve with type-argument
// lists producing equal typesToString keys return the same Function object;
// with distinct keys, distinct objects. (S4.)
func TestMonomorphizationCacheIdentity(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
function id<T>(x: T): T
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	protoEntity, ok := prog.LookupGlobal("m/id")
	if !ok {
		t.Fatal("m/id missing")
	}
	proto := protoEntity.(*program.FunctionPrototype)

	fn1 := r.ResolveFunction(proto, []types.Type{types.I32}, nil)
	fn2 := r.ResolveFunction(proto, []types.Type{types.I32}, nil)
	if fn1 != fn2 {
		t.Error("equal type-argument keys must return the same Function instance")
	}
	if fn1.Parameters[0].Type != types.I32 || fn1.ReturnType != types.I32 {
		t.Errorf("fn1 parameter/return type = %v/%v, want i32/i32", fn1.Parameters[0].Type, fn1.ReturnType)
	}

	fn3 := r.ResolveFunction(proto, []types.Type{types.F64}, nil)
	if fn3 == fn1 {
		t.Error("distinct type-argument keys must return distinct Function instances")
	}
	if fn3.Parameters[0].Type != types.F64 || fn3.ReturnType != types.F64 {
		t.Errorf("fn3 parameter/return type = %v/%v, want f64/f64", fn3.Parameters[0].Type, fn3.ReturnType)
	}
}

// Invariant 7: when a method of a generic class is resolved, its
// contextualTypeArguments is a superset of the class's; identical keys use
// the method's own type arguments.
func TestContextualInheritance(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
class Box<T> {
	wrap<U>(x: U): U
	identity<T>(x: T): T
}
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	cpEntity, ok := prog.LookupGlobal("m/Box")
	if !ok {
		t.Fatal("m/Box missing")
	}
	cp := cpEntity.(*program.ClassPrototype)
	cls := r.ResolveClass(cp, []types.Type{types.I32})
	if cls.ContextualTypeArguments["T"] != types.I32 {
		t.Fatal("class instance's own contextual T must be i32")
	}

	wrapProto, ok := cp.InstanceMembers()["wrap"].(*program.FunctionPrototype)
	if !ok {
		t.Fatal("Box.wrap prototype missing")
	}
	wrapFn := r.ResolveFunction(wrapProto, []types.Type{types.F64}, cls)
	if wrapFn.ContextualTypeArguments["T"] != types.I32 {
		t.Error("method's contextual arguments must inherit the class's T")
	}
	if wrapFn.ContextualTypeArguments["U"] != types.F64 {
		t.Error("method's own U must be present in its contextual arguments")
	}

	identityProto, ok := cp.InstanceMembers()["identity"].(*program.FunctionPrototype)
	if !ok {
		t.Fatal("Box.identity prototype missing")
	}
	identityFn := r.ResolveFunction(identityProto, []types.Type{types.F64}, cls)
	if identityFn.ContextualTypeArguments["T"] != types.F64 {
		t.Error("identical key T must resolve to the method's own type argument, not the class's")
	}
}

// Invariant 8: resolveTypeArguments (here exercised via ResolveInclTypeArguments,
// its raw-node-list counterpart) emits Expected_0_type_arguments_but_got_1 iff
// the lengths differ.
func TestTypeArgumentArity(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
class Pair<A, B> {
	a: A
}
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	src := testfixture.ParseFile(prog, "caller", "function f(): void")

	cpEntity, _ := prog.LookupGlobal("m/Pair")
	cp := cpEntity.(*program.ClassPrototype)

	// Correct arity: no diagnostic, resolves successfully.
	before := len(prog.Diagnostics.All())
	_, ok := r.ResolveInclTypeArguments([]*ast.TypeNode{{Name: "i32"}, {Name: "f64"}}, src, nil, len(cp.Declaration.TypeParameters), token.Range{}, true)
	if !ok {
		t.Fatal("expected correct-arity resolution to succeed")
	}
	if len(prog.Diagnostics.All()) != before {
		t.Error("correct arity must not report a diagnostic")
	}

	// Wrong arity: exactly one diagnostic, failure.
	_, ok = r.ResolveInclTypeArguments([]*ast.TypeNode{{Name: "i32"}}, src, nil, len(cp.Declaration.TypeParameters), token.Range{}, true)
	if ok {
		t.Fatal("expected wrong-arity resolution to fail")
	}
	var arityDiags int
	for _, d := range prog.Diagnostics.All()[before:] {
		if d.Code == diagnostics.ExpectedTypeArgumentsButGot {
			arityDiags++
		}
	}
	if arityDiags != 1 {
		t.Errorf("got %d Expected_0_type_arguments_but_got_1 diagnostics, want 1", arityDiags)
	}
}

// S4 standalone, matching spec.md's literal example shape.
func TestS4GenericFunctionResolution(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
function id<T>(x: T): T
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	protoEntity, _ := prog.LookupGlobal("m/id")
	proto := protoEntity.(*program.FunctionPrototype)

	first := r.ResolveFunction(proto, []types.Type{types.I32}, nil)
	second := r.ResolveFunction(proto, []types.Type{types.I32}, nil)
	if first != second {
		t.Error("calling resolve again with the same type arguments must return the identical instance")
	}
}

// resolveThis reports _this_cannot_be_referenced_in_current_location outside
// an instance method.
func TestResolveThisOutsideInstanceMethod(t *testing.T) {
	prog := newProgram()
	r := New(prog)
	_, ok := r.resolveThis(nil, token.Range{}, true)
	if ok {
		t.Fatal("resolveThis(nil function) must fail")
	}
	var found bool
	for _, d := range prog.Diagnostics.All() {
		if d.Code == diagnostics.ThisCannotBeReferencedHere {
			found = true
		}
	}
	if !found {
		t.Error("expected _this_cannot_be_referenced_in_current_location to be reported")
	}
}

// resolveThis resolves `this` inside an instance method to the method's
// enclosing class.
func TestResolveThisResolvesToEnclosingClass(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
class C {
	method(): void
}
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	cpEntity, _ := prog.LookupGlobal("m/C")
	cp := cpEntity.(*program.ClassPrototype)
	cls := r.ResolveClass(cp, nil)

	methodProto, ok := cp.InstanceMembers()["method"].(*program.FunctionPrototype)
	if !ok {
		t.Fatal("C.method prototype missing")
	}
	fn := r.ResolveFunction(methodProto, nil, cls)

	el, ok := r.resolveThis(fn, token.Range{}, true)
	if !ok {
		t.Fatal("resolveThis inside an instance method must succeed")
	}
	if el.Entity != program.Entity(cls) {
		t.Errorf("resolveThis returned %+v, want the enclosing class %v", el, cls)
	}
}

// resolvePropertyAccess reports Property_0_does_not_exist_on_type_1 for an
// absent member.
func TestResolvePropertyAccessMissingMember(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
class C {
	v: i32
}
`)
	binder.Initialize(prog, nil)
	r := New(prog)

	cpEntity, _ := prog.LookupGlobal("m/C")
	cp := cpEntity.(*program.ClassPrototype)
	cls := r.ResolveClass(cp, nil)

	_, ok := r.resolvePropertyAccess(entityElement(cls), "missing", token.Range{}, true)
	if ok {
		t.Fatal("expected resolvePropertyAccess to fail for an absent member")
	}
	var found bool
	for _, d := range prog.Diagnostics.All() {
		if d.Code == diagnostics.PropertyDoesNotExistOnType {
			found = true
		}
	}
	if !found {
		t.Error("expected Property_0_does_not_exist_on_type_1 to be reported")
	}
}
