// Package builtins is the external collaborator spec.md §1 describes as
// "an external initializer populates primitive globals and types into the
// program": it is invoked by the binder's Initialize step, but the binder
// itself never knows what it registers.
//
// The set here mirrors the handful of always-present compiler-provided
// globals a WASM-targeting TypeScript-subset toolchain ships (modeled on
// AssemblyScript's own `NaN` / `Infinity` / `ASC_TARGET`-style builtins):
// float sentinels and a target-width constant, all marked BUILTIN so callers
// can tell a compiler-provided Global apart from a user declaration.
package builtins

import (
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/types"
)

// Default implements binder.BuiltinInitializer with the standard global set.
type Default struct{}

// InitializeBuiltins registers NaN, Infinity, and a pointer-width-dependent
// HEAP_BASE constant directly into prog.Elements (bare names, no source
// file, no namespace), each flagged BUILTIN and CONSTANT.
func (Default) InitializeBuiltins(prog *program.Program) {
	registerFloatConstant(prog, "NaN", types.F64)
	registerFloatConstant(prog, "Infinity", types.F64)
	registerIntConstant(prog, "HEAP_BASE", prog.Target.PointerType(false))
}

func registerFloatConstant(prog *program.Program, name string, t types.Primitive) {
	g := program.NewGlobal(prog, name, name, nil, nil, nil)
	g.Type = t
	g.SetFlag(program.FlagBuiltin)
	g.SetFlag(program.FlagConstant)
	g.HasFloatValue = true
	prog.DefineElement(name, g)
}

func registerIntConstant(prog *program.Program, name string, t types.Primitive) {
	g := program.NewGlobal(prog, name, name, nil, nil, nil)
	g.Type = t
	g.SetFlag(program.FlagBuiltin)
	g.SetFlag(program.FlagConstant)
	g.HasIntValue = true
	prog.DefineElement(name, g)
}
