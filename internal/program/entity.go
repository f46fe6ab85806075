// Package program implements the entity model and program-level directories
// the binder populates and the resolver consumes.
package program

import "github.com/tsstack/binder/internal/ast"

// EntityKind discriminates the concrete entity variants.
type EntityKind int

const (
	KindNamespace EntityKind = iota
	KindEnum
	KindEnumValue
	KindGlobal
	KindLocal
	KindFunctionPrototype
	KindFunction
	KindFieldPrototype
	KindField
	KindProperty
	KindClassPrototype
	KindClass
	KindInterfacePrototype
	KindInterface
)

func (k EntityKind) String() string {
	switch k {
	case KindNamespace:
		return "Namespace"
	case KindEnum:
		return "Enum"
	case KindEnumValue:
		return "EnumValue"
	case KindGlobal:
		return "Global"
	case KindLocal:
		return "Local"
	case KindFunctionPrototype:
		return "FunctionPrototype"
	case KindFunction:
		return "Function"
	case KindFieldPrototype:
		return "FieldPrototype"
	case KindField:
		return "Field"
	case KindProperty:
		return "Property"
	case KindClassPrototype:
		return "ClassPrototype"
	case KindClass:
		return "Class"
	case KindInterfacePrototype:
		return "InterfacePrototype"
	case KindInterface:
		return "Interface"
	default:
		return "Unknown"
	}
}

// Flags is the bitmap carried by every entity.
type Flags uint32

const (
	FlagCompiled Flags = 1 << iota
	FlagImported
	FlagExported
	FlagBuiltin
	FlagDeclared
	FlagGeneric
	FlagConstant
	FlagConstantValue
	FlagInstance
	FlagGetter
	FlagSetter
	FlagGlobal
	FlagReadonly
	FlagPublic
	FlagProtected
	FlagPrivate
)

// Entity is the shared surface every program-level entity variant implements.
// Kind-specific data lives on the concrete struct embedding Base.
type Entity interface {
	Kind() EntityKind
	SimpleName() string
	InternalName() string
	Flags() Flags
	HasFlag(f Flags) bool
	SetFlag(f Flags)
	Namespace() Entity
	// Members returns this entity's member map, lazily allocating it on first
	// use. Entities that can never carry members (EnumValue, Global, Function,
	// FieldPrototype, Field, Property) return nil.
	Members() map[string]Entity
}

// Base factors the fields common to every entity variant: the flag bitmap,
// the namespace back-link, and the lazily-allocated member map.
type Base struct {
	kind         EntityKind
	Program      *Program
	name         string
	internalName string
	flags        Flags
	namespace    Entity
	members      map[string]Entity
}

func newBase(kind EntityKind, name, internalName string, namespace Entity, prog *Program) Base {
	return Base{kind: kind, Program: prog, name: name, internalName: internalName, namespace: namespace}
}

func (b *Base) Kind() EntityKind       { return b.kind }
func (b *Base) SimpleName() string     { return b.name }
func (b *Base) InternalName() string   { return b.internalName }
func (b *Base) Flags() Flags           { return b.flags }
func (b *Base) HasFlag(f Flags) bool   { return b.flags&f != 0 }
func (b *Base) SetFlag(f Flags)        { b.flags |= f }
func (b *Base) Namespace() Entity      { return b.namespace }

func (b *Base) Members() map[string]Entity {
	if b.members == nil {
		b.members = make(map[string]Entity)
	}
	return b.members
}

// IsMutable is the negation of CONSTANT.
func (b *Base) IsMutable() bool { return !b.HasFlag(FlagConstant) }

// MemberContainer is implemented by ClassPrototype and InterfacePrototype,
// letting shared field/method-placement logic in the binder operate over
// either without a type switch at every call site.
type MemberContainer interface {
	Entity
	InstanceMembers() map[string]Entity
	AddInstanceMember(name string, e Entity)
	SourceFile() *ast.SourceFile
}
