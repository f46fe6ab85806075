// Package ast defines the subset of the parsed AST the binder consumes.
//
// Lexing and parsing live outside this module: an external parser builds
// these nodes, already carrying precomputed internal names (mangled, path-qualified)
// and source ranges. The binder only reads the fields declared here.
package ast

import "github.com/tsstack/binder/internal/token"

// Node is the base interface implemented by every AST node the binder touches.
type Node interface {
	Range() token.Range
}

// Statement is a top-level or member declaration.
type Statement interface {
	Node
	statementNode()
}

// Expression is anything that can appear where a value or type-level reference
// is expected (identifiers, property access, this, new).
type Expression interface {
	Node
	expressionNode()
}

// SourceFile is one parsed source; Program owns an ordered list of these.
type SourceFile struct {
	// Path is the source's internal path, used as the left-hand side of every
	// path-delimited internal name produced for declarations in this file.
	Path string
	// InternalPath is how other files refer to this one in import/export module
	// specifiers (e.g. a resolved relative import path); usually equal to Path.
	InternalPath string
	Statements   []Statement
}

// Decorator models a `@name(arg)` or `@name` annotation on a declaration.
// The binder only recognizes `@global`, which must be identifier-only and carry
// at most one argument.
type Decorator struct {
	Name      string
	Arguments []Expression
	Rng       token.Range
}

func (d *Decorator) Range() token.Range { return d.Rng }

// IsGlobal reports whether this is a well-formed `@global` decorator.
func (d *Decorator) IsGlobal() bool {
	return d != nil && d.Name == "global" && len(d.Arguments) <= 1
}

// Modifier is a single declaration modifier keyword.
type Modifier int

const (
	ModImport Modifier = iota
	ModExport
	ModDeclare
	ModConst
	ModStatic
	ModGet
	ModSet
	ModReadonly
	ModPrivate
	ModProtected
	ModPublic
	ModAbstract
)

// ModifierSet is the set of modifiers present on one declaration.
type ModifierSet map[Modifier]bool

func NewModifierSet(mods ...Modifier) ModifierSet {
	s := make(ModifierSet, len(mods))
	for _, m := range mods {
		s[m] = true
	}
	return s
}

func (s ModifierSet) Has(m Modifier) bool { return s != nil && s[m] }

// Identifier is a bare name reference; it is used both as the "Name" of a
// declaration and as an Expression in identifier-resolution contexts.
type Identifier struct {
	Name string
	Rng  token.Range
}

func (i *Identifier) Range() token.Range { return i.Rng }
func (i *Identifier) expressionNode()    {}

// TypeParameter is one entry of a declaration's `<T, U, ...>` parameter list.
type TypeParameter struct {
	Name string
	Rng  token.Range
}

// TypeNode is an unresolved reference to a type, e.g. `Array<T>` or `i32`.
type TypeNode struct {
	Name          string
	TypeArguments []*TypeNode
	Rng           token.Range
}

func (t *TypeNode) Range() token.Range { return t.Rng }

// Parameter is one function/method parameter.
type Parameter struct {
	Name        string
	Type        *TypeNode // nil means unannotated; resolution of it fails
	Initializer Expression
	Rng         token.Range
}
