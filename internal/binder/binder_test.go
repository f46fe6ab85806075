package binder_test

import (
	"testing"
	"time"

	"github.com/tsstack/binder/internal/binder"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/testfixture"
	"github.com/tsstack/binder/internal/types"
)

func newProgram() *program.Program {
	return program.New(types.WASM32)
}

// S1 (simple export): two files; file m exports f, main imports it. After
// binding, exports["m/f"] and elements["main/f"] are the same entity.
func TestS1SimpleExport(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
export function f(): void
-- main.ts --
import { f } from "m"
`)
	binder.Initialize(prog, nil)

	exported, ok := prog.Exports["m/f"]
	if !ok {
		t.Fatal(`exports["m/f"] missing`)
	}
	imported, ok := prog.Elements["main/f"]
	if !ok {
		t.Fatal(`elements["main/f"] missing`)
	}
	if exported != imported {
		t.Error("exports[\"m/f\"] and elements[\"main/f\"] must be the same entity")
	}
	if prog.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", prog.Diagnostics.All())
	}
}

// S2 (re-export): a re-exports from b, b exports f, main imports from a.
// exports["a/f"], exports["b/f"], elements["main/f"] are all equal.
func TestS2ReExportChain(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- a.ts --
export { f } from "b"
-- b.ts --
export function f(): void
-- main.ts --
import { f } from "a"
`)
	binder.Initialize(prog, nil)

	a, aok := prog.Exports["a/f"]
	b, bok := prog.Exports["b/f"]
	m, mok := prog.Elements["main/f"]
	if !aok || !bok || !mok {
		t.Fatalf("missing bindings: a=%v b=%v m=%v", aok, bok, mok)
	}
	if a != b || b != m {
		t.Error("exports[\"a/f\"], exports[\"b/f\"], elements[\"main/f\"] must all be equal")
	}
}

// S3 (missing import): m has no exports; main imports g from m. A single
// Module_0_has_no_exported_member_1 is emitted for m / g.
func TestS3MissingImport(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
function internalOnly(): void
-- main.ts --
import { g } from "m"
`)
	binder.Initialize(prog, nil)

	all := prog.Diagnostics.All()
	var matches []string
	for _, d := range all {
		if d.Code == diagnostics.ModuleHasNoExportedMember {
			matches = append(matches, d.Error())
		}
	}
	if len(matches) != 1 {
		t.Fatalf("got %d Module_0_has_no_exported_member_1 diagnostics, want 1: %v", len(matches), all)
	}
}

// S5 (static accessor pair): the Property C.v has both getterPrototype and
// setterPrototype populated; a second static get v is a duplicate.
func TestS5StaticAccessorPair(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
class C {
	static get v(): i32
	static set v(x: i32): void
}
`)
	binder.Initialize(prog, nil)

	cpEntity, ok := prog.Elements["m/C"]
	if !ok {
		t.Fatal(`elements["m/C"] missing`)
	}
	cp, ok := cpEntity.(*program.ClassPrototype)
	if !ok {
		t.Fatalf("m/C is %T, want *program.ClassPrototype", cpEntity)
	}
	propEntity, ok := cp.Members()["v"]
	if !ok {
		t.Fatal(`class member "v" missing`)
	}
	prop, ok := propEntity.(*program.Property)
	if !ok {
		t.Fatalf("member v is %T, want *program.Property", propEntity)
	}
	if prop.GetterPrototype == nil || prop.SetterPrototype == nil {
		t.Error("Property C.v must have both getter and setter populated")
	}
	if prog.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", prog.Diagnostics.All())
	}
}

func TestS5DuplicateGetterIsReported(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
class C {
	static get v(): i32
	static get v(): i32
}
`)
	binder.Initialize(prog, nil)

	var count int
	for _, d := range prog.Diagnostics.All() {
		if d.Code == diagnostics.DuplicateIdentifier {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d Duplicate_identifier_0 diagnostics, want 1: %v", count, prog.Diagnostics.All())
	}
}

// S6 (namespace shadowing): namespace N has its own f; a top-level f also
// exists. Both must be independently addressable; the binder places them
// under distinct internal names and distinct member maps.
func TestS6NamespaceShadowing(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
namespace N {
	function f(): void
}
function f(): void
`)
	binder.Initialize(prog, nil)

	nsEntity, ok := prog.Elements["m/N"]
	if !ok {
		t.Fatal(`elements["m/N"] missing`)
	}
	ns := nsEntity.(*program.Namespace)
	nested, ok := ns.Members()["f"]
	if !ok {
		t.Fatal(`N.f missing from namespace members`)
	}
	top, ok := prog.Elements["m/f"]
	if !ok {
		t.Fatal(`elements["m/f"] missing`)
	}
	if nested == top {
		t.Error("N.f and the top-level f must be distinct entities")
	}
	if nested.InternalName() != "m/N.f" {
		t.Errorf("N.f InternalName = %q, want m/N.f", nested.InternalName())
	}
	if top.InternalName() != "m/f" {
		t.Errorf("top-level f InternalName = %q, want m/f", top.InternalName())
	}
}

// Invariant 1: idempotent registration — binding the same single-file
// program twice (fresh programs) yields identical key-sets across the four
// directories.
func TestIdempotentRegistration(t *testing.T) {
	src := `-- m.ts --
export function f(): void
class C {
	v: i32
}
`
	p1 := newProgram()
	testfixture.Load(p1, src)
	binder.Initialize(p1, nil)

	p2 := newProgram()
	testfixture.Load(p2, src)
	binder.Initialize(p2, nil)

	if !sameKeySet(p1.Elements, p2.Elements) {
		t.Error("elements key-sets differ between two fresh binds of the same program")
	}
	if !sameKeySet(p1.Types, p2.Types) {
		t.Error("types key-sets differ between two fresh binds of the same program")
	}
	if !sameKeySet(p1.TypeAliases, p2.TypeAliases) {
		t.Error("typeAliases key-sets differ between two fresh binds of the same program")
	}
	if !sameKeySet(p1.Exports, p2.Exports) {
		t.Error("exports key-sets differ between two fresh binds of the same program")
	}
}

func sameKeySet[V any](a, b map[string]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Invariant 2: disjoint duplicate reporting — a colliding internal name
// produces exactly one Duplicate_identifier_0 and the first registration
// survives.
func TestDisjointDuplicateReporting(t *testing.T) {
	prog := newProgram()
	testfixture.ParseFile(prog, "m", `
function f(): void
function f(): void
`)
	binder.Initialize(prog, nil)

	var dupes int
	for _, d := range prog.Diagnostics.All() {
		if d.Code == diagnostics.DuplicateIdentifier {
			dupes++
		}
	}
	if dupes != 1 {
		t.Errorf("got %d Duplicate_identifier_0 diagnostics, want 1", dupes)
	}
	if _, ok := prog.Elements["m/f"]; !ok {
		t.Error("first-registered m/f must survive the collision")
	}
}

// Invariant 5: a cyclic re-export graph terminates with a single
// Module_0_has_no_exported_member_1, not infinite looping.
func TestReExportCycleTermination(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- a.ts --
export { x } from "b"
-- b.ts --
export { x } from "a"
`)
	done := make(chan struct{})
	go func() {
		binder.Initialize(prog, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("binder.Initialize did not terminate on a cyclic re-export graph")
	}

	var count int
	for _, d := range prog.Diagnostics.All() {
		if d.Code == diagnostics.ModuleHasNoExportedMember {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d Module_0_has_no_exported_member_1 diagnostics for a re-export cycle, want 1: %v", count, prog.Diagnostics.All())
	}
}

func TestGlobalDecoratorRegistersBareAlias(t *testing.T) {
	prog := newProgram()
	testfixture.Load(prog, `-- m.ts --
@global
function f(): void
`)
	binder.Initialize(prog, nil)

	qualified, ok := prog.Elements["m/f"]
	if !ok {
		t.Fatal(`elements["m/f"] missing`)
	}
	bare, ok := prog.Elements["f"]
	if !ok {
		t.Fatal(`elements["f"] (bare @global alias) missing`)
	}
	if qualified != bare {
		t.Error("@global alias and qualified entry must be the same entity")
	}
}
