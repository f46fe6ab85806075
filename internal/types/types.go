// Package types models the concrete Type values the binder's type registry maps
// qualified type names onto (Program.types).
//
// Resolution of TypeNodes into these values, alias chasing, and contextual
// type-parameter substitution are resolver concerns (internal/resolver); this
// package only defines what a resolved Type looks like.
package types

import "strings"

// Target selects the pointer width of the stack-machine runtime the program
// compiles for (Program.target).
type Target int

const (
	WASM32 Target = iota
	WASM64
)

// PointerSize returns the pointer width in bytes for this target.
func (t Target) PointerSize() int {
	if t == WASM64 {
		return 8
	}
	return 4
}

func (t Target) String() string {
	if t == WASM64 {
		return "wasm64"
	}
	return "wasm32"
}

// Kind discriminates the concrete Type variants.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindInterface
)

// Type is any concrete, resolved type. Implementations are comparable with ==
// when built from the shared singletons this package and internal/program
// construct (primitives are interned; class/interface types are one-per-entity).
type Type interface {
	String() string
	Kind() Kind
}

// Primitive is a built-in scalar type (i8/i16/i32/i64/u8/u16/u32/u64/
// bool/f32/f64/void, plus the isize/usize pointer-sized aliases).
type Primitive struct {
	Name string
}

func (p Primitive) String() string { return p.Name }
func (p Primitive) Kind() Kind     { return KindPrimitive }

// Entity is the minimal surface a program-level entity (Class, Interface) must
// implement to be referenced from a Type without internal/types importing
// internal/program (which would create an import cycle: program depends on
// types for its type registry).
type Entity interface {
	EntityInternalName() string
}

// ClassType is the Type of a resolved (monomorphized) class instance. Its
// in-memory representation is a pointer into linear memory, so its width is
// the compile target's pointer size ("computed class Type
// (pointer-width as class)").
type ClassType struct {
	Name  string
	Width int
	Owner Entity
}

func (c *ClassType) String() string { return c.Name }
func (c *ClassType) Kind() Kind     { return KindClass }

// InterfaceType is the Type of a resolved interface instance; structurally
// identical to ClassType but tagged distinctly so callers never need a type
// switch to tell them apart.
type InterfaceType struct {
	Name  string
	Width int
	Owner Entity
}

func (i *InterfaceType) String() string { return i.Name }
func (i *InterfaceType) Kind() Kind     { return KindInterface }

// Canonical primitive singletons.
var (
	I8   = Primitive{Name: "i8"}
	I16  = Primitive{Name: "i16"}
	I32  = Primitive{Name: "i32"}
	I64  = Primitive{Name: "i64"}
	U8   = Primitive{Name: "u8"}
	U16  = Primitive{Name: "u16"}
	U32  = Primitive{Name: "u32"}
	U64  = Primitive{Name: "u64"}
	Bool = Primitive{Name: "bool"}
	F32  = Primitive{Name: "f32"}
	F64  = Primitive{Name: "f64"}
	Void = Primitive{Name: "void"}
)

// Primitives lists every built-in primitive in a stable order, used to seed a
// fresh Program's type registry.
var Primitives = []Primitive{I8, I16, I32, I64, U8, U16, U32, U64, Bool, F32, F64, Void}

// PointerType returns the target-dependent `usize`/`isize` backing primitive.
func (t Target) PointerType(signed bool) Primitive {
	if signed {
		if t == WASM64 {
			return I64
		}
		return I32
	}
	if t == WASM64 {
		return U64
	}
	return U32
}

// NativeKind buckets function-local temporaries by their stack-machine native
// representation (per-type free-lists for temp locals). Only these
// four kinds can ever back a temp local; anything else is a binder bug.
type NativeKind int

const (
	NativeI32 NativeKind = iota
	NativeI64
	NativeF32
	NativeF64
)

// Native maps a resolved Type to the native kind backing it in the stack
// machine, for temp-local free-list bucketing. Panics on any Type that cannot
// back a temp local (class/interface references are always pointer-sized
// natives, bucketed by the target's pointer width).
func Native(t Type, target Target) NativeKind {
	switch tt := t.(type) {
	case Primitive:
		switch tt.Name {
		case "i8", "i16", "i32", "u8", "u16", "u32":
			return NativeI32
		case "i64", "u64":
			return NativeI64
		case "f32":
			return NativeF32
		case "f64":
			return NativeF64
		}
	case *ClassType, *InterfaceType:
		if target == WASM64 {
			return NativeI64
		}
		return NativeI32
	}
	panic("types: no native kind for " + describeType(t))
}

func describeType(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// TypesToString renders a canonical, injective string for a list of types
// ("Generic instance suffix"). open/close let callers
// pick the bare comma form used inside instance-cache keys
// (TypesToString(args, "", "")) or the bracketed disambiguation form used in
// type names (TypesToString(args, "<", ">")).
func TypesToString(ts []Type, open, close string) string {
	if len(ts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(open)
	for i, t := range ts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	b.WriteString(close)
	return b.String()
}
