package ast

import "github.com/tsstack/binder/internal/token"

// declBase factors the fields every declaration-kind statement shares.
type declBase struct {
	Name         *Identifier
	InternalName string
	Modifiers    ModifierSet
	Decorators   []*Decorator
	Rng          token.Range
}

func (d *declBase) Range() token.Range { return d.Rng }
func (d *declBase) statementNode()     {}

// GlobalDecorator returns the declaration's `@global` decorator, if any.
func (d *declBase) GlobalDecorator() *Decorator {
	for _, dec := range d.Decorators {
		if dec.IsGlobal() {
			return dec
		}
	}
	return nil
}

func (d *declBase) IsExported() bool { return d.Modifiers.Has(ModExport) }
func (d *declBase) IsImported() bool { return d.Modifiers.Has(ModImport) }
func (d *declBase) IsDeclared() bool { return d.Modifiers.Has(ModDeclare) }
func (d *declBase) IsConst() bool    { return d.Modifiers.Has(ModConst) }
func (d *declBase) IsStatic() bool   { return d.Modifiers.Has(ModStatic) }
func (d *declBase) IsGetter() bool   { return d.Modifiers.Has(ModGet) }
func (d *declBase) IsSetter() bool   { return d.Modifiers.Has(ModSet) }
func (d *declBase) IsReadonly() bool { return d.Modifiers.Has(ModReadonly) }

// NamespaceDeclaration: `namespace N { ... }`.
type NamespaceDeclaration struct {
	declBase
	Members []Statement
}

// EnumDeclaration: `enum E { A, B = 2 }`.
type EnumDeclaration struct {
	declBase
	Values []*EnumValueDeclaration
}

// EnumValueDeclaration is one member of an enum.
type EnumValueDeclaration struct {
	declBase
	HasValue      bool
	ConstantValue int32
}

// VariableDeclaration is a top-level or namespace-level `var`/`let`/`const`
// binding. Static class fields are FieldDeclarations, not VariableDeclarations.
type VariableDeclaration struct {
	declBase
	Type        *TypeNode // nil if unannotated
	Initializer Expression
}

// FunctionDeclaration covers free functions and class/interface methods; method
// vs. free-function is distinguished by which container (if any) holds it.
type FunctionDeclaration struct {
	declBase
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     *TypeNode
	Body           []Statement
}

func (f *FunctionDeclaration) IsGeneric() bool { return len(f.TypeParameters) > 0 }

// FieldDeclaration is a class/interface instance or static field.
type FieldDeclaration struct {
	declBase
	Type        *TypeNode
	Initializer Expression
}

// ClassDeclaration: `class C<T> extends Base { ... }`.
type ClassDeclaration struct {
	declBase
	TypeParameters []*TypeParameter
	BaseClass      *TypeNode // nil if none
	Members        []Statement
}

func (c *ClassDeclaration) IsGeneric() bool { return len(c.TypeParameters) > 0 }

// InterfaceDeclaration: `interface I<T> { ... }`. Structurally identical to a
// class declaration; kept as a distinct Go type so the binder can dispatch on
// it to build InterfacePrototype/Interface entities instead of
// ClassPrototype/Class ones.
type InterfaceDeclaration struct {
	declBase
	TypeParameters []*TypeParameter
	BaseInterface  *TypeNode // nil if none
	Members        []Statement
}

func (i *InterfaceDeclaration) IsGeneric() bool { return len(i.TypeParameters) > 0 }

// TypeDeclarationStatement: `type Name = TypeNode;` (user type alias).
type TypeDeclarationStatement struct {
	declBase
	Type *TypeNode
}

// ImportSpecifier is one `id as local` entry of a named import.
type ImportSpecifier struct {
	ExternalIdentifier *Identifier // the name exported by the other module ("id")
	LocalAlias         *Identifier // local binding name ("local"); defaults to ExternalIdentifier
}

func (s *ImportSpecifier) LocalName() string {
	if s.LocalAlias != nil {
		return s.LocalAlias.Name
	}
	return s.ExternalIdentifier.Name
}

// ImportDeclaration: `import { id as local, ... } from "mod";` or the
// unsupported namespace form `import * as ns from "mod";`.
type ImportDeclaration struct {
	Rng                token.Range
	ModulePath         string
	ModuleInternalPath string
	Specifiers         []*ImportSpecifier
	NamespaceAlias     *Identifier // non-nil for `import * as ns from "mod"`
}

func (i *ImportDeclaration) Range() token.Range { return i.Rng }
func (i *ImportDeclaration) statementNode()     {}
func (i *ImportDeclaration) IsNamespaceImport() bool {
	return i.NamespaceAlias != nil
}

// ExportSpecifier is one `id as name` entry of an export statement.
type ExportSpecifier struct {
	Identifier         *Identifier // the locally/externally referenced name ("id")
	ExternalIdentifier *Identifier // exported-as name ("name"); defaults to Identifier
}

func (s *ExportSpecifier) ExternalName() string {
	if s.ExternalIdentifier != nil {
		return s.ExternalIdentifier.Name
	}
	return s.Identifier.Name
}

// ExportDeclaration: `export { id as name };` or `export { id as name } from "mod";`.
type ExportDeclaration struct {
	Rng                token.Range
	ModulePath         *string // nil for a local (non-re-export) export
	ModuleInternalPath *string
	Specifiers         []*ExportSpecifier
}

func (e *ExportDeclaration) Range() token.Range { return e.Rng }
func (e *ExportDeclaration) statementNode()     {}
func (e *ExportDeclaration) IsReexport() bool   { return e.ModulePath != nil }
