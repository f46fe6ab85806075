package program

import (
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/types"
)

// Namespace is a semantic container; members can be classes, enums, functions,
// interfaces, nested namespaces, or variables.
type Namespace struct {
	Base
	Declaration *ast.NamespaceDeclaration
}

func NewNamespace(prog *Program, name, internalName string, namespace Entity, decl *ast.NamespaceDeclaration) *Namespace {
	return &Namespace{Base: newBase(KindNamespace, name, internalName, namespace, prog), Declaration: decl}
}

// Enum is a set of named integer constants.
type Enum struct {
	Base
	Declaration *ast.EnumDeclaration
}

func NewEnum(prog *Program, name, internalName string, namespace Entity, decl *ast.EnumDeclaration) *Enum {
	return &Enum{Base: newBase(KindEnum, name, internalName, namespace, prog), Declaration: decl}
}

// EnumValue is one member of an Enum; its ConstantValue is produced upstream
// by an earlier constant-folding pass and merely stored here.
type EnumValue struct {
	Base
	Declaration   *ast.EnumValueDeclaration
	Parent        *Enum
	ConstantValue int32
}

func NewEnumValue(prog *Program, name, internalName string, parent *Enum, decl *ast.EnumValueDeclaration, value int32) *EnumValue {
	return &EnumValue{
		Base:          newBase(KindEnumValue, name, internalName, parent, prog),
		Declaration:   decl,
		Parent:        parent,
		ConstantValue: value,
	}
}

func (e *EnumValue) Members() map[string]Entity { return nil }

// Global represents a top-level variable/constant, and also a class or
// interface static field once placed by the binder (in the static-field
// case, Declaration is the *ast.FieldDeclaration, not a VariableDeclaration —
// both share everything this entity needs: a Type and an Initializer).
// Declaration is nil for compiler-synthesized built-ins.
type Global struct {
	Base
	Declaration ast.Node
	Source      *ast.SourceFile
	Type        types.Type

	HasIntValue   bool
	IntValue      int64
	HasFloatValue bool
	FloatValue    float64
}

func NewGlobal(prog *Program, name, internalName string, namespace Entity, decl ast.Node, source *ast.SourceFile) *Global {
	return &Global{Base: newBase(KindGlobal, name, internalName, namespace, prog), Declaration: decl, Source: source}
}

func (g *Global) Members() map[string]Entity { return nil }

// Local is a function-local variable or parameter. Unlike every other entity
// variant it is not a program-level entity: it lives inside a Function and so
// does not embed Base / carry an internal name or flags.
type Local struct {
	Name  string
	Index int
	Type  types.Type
}
