package program

import (
	"github.com/google/uuid"
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/types"
)

// FieldPrototype is a class or interface field declaration before binding to
// a concrete instance. Static fields are never represented here — they
// become Globals; only instance fields get a FieldPrototype.
type FieldPrototype struct {
	Base
	Declaration *ast.FieldDeclaration
	Owner       MemberContainer
}

func NewFieldPrototype(prog *Program, name, internalName string, decl *ast.FieldDeclaration, owner MemberContainer) *FieldPrototype {
	fp := &FieldPrototype{Base: newBase(KindFieldPrototype, name, internalName, owner, prog), Declaration: decl, Owner: owner}
	if decl != nil && decl.IsReadonly() {
		fp.SetFlag(FlagReadonly)
	}
	return fp
}

func (fp *FieldPrototype) Members() map[string]Entity { return nil }

// Field is a resolved instance field of a monomorphized Class.
type Field struct {
	Base
	Prototype *FieldPrototype
	Type      types.Type

	HasIntValue   bool
	IntValue      int64
	HasFloatValue bool
	FloatValue    float64
}

func NewField(prog *Program, prototype *FieldPrototype, internalName string, owner *Class, t types.Type) *Field {
	return &Field{
		Base:      newBase(KindField, prototype.SimpleName(), internalName, owner, prog),
		Prototype: prototype,
		Type:      t,
	}
}

func (f *Field) Members() map[string]Entity { return nil }

// Property is the shared entity for a getter/setter pair sharing one
// simple name: at most one getter and one setter.
type Property struct {
	Base
	Owner           MemberContainer
	GetterPrototype *FunctionPrototype
	SetterPrototype *FunctionPrototype
}

func NewProperty(prog *Program, name, internalName string, owner MemberContainer) *Property {
	return &Property{Base: newBase(KindProperty, name, internalName, owner, prog), Owner: owner}
}

func (p *Property) Members() map[string]Entity { return nil }

// ClassPrototype is a class declaration before any type arguments are bound.
// GENERIC is set iff the declaration carries type parameters.
type ClassPrototype struct {
	Base
	Declaration *ast.ClassDeclaration
	// Source is the file the declaration lives in, needed to resolve
	// unqualified names (base class, field types) back into this file's
	// scope during monomorphization.
	Source          *ast.SourceFile
	Instances       map[string]*Class
	instanceMembers map[string]Entity
}

func NewClassPrototype(prog *Program, name, internalName string, namespace Entity, decl *ast.ClassDeclaration, source *ast.SourceFile) *ClassPrototype {
	cp := &ClassPrototype{
		Base:        newBase(KindClassPrototype, name, internalName, namespace, prog),
		Declaration: decl,
		Source:      source,
		Instances:   make(map[string]*Class),
	}
	if decl != nil && decl.IsGeneric() {
		cp.SetFlag(FlagGeneric)
	}
	return cp
}

// InstanceMembers holds instance fields/methods placed by the binder, which
// are resolved against a concrete Class only at monomorphization time: there
// is no program-level entry for an instance member until then.
func (cp *ClassPrototype) InstanceMembers() map[string]Entity {
	if cp.instanceMembers == nil {
		cp.instanceMembers = make(map[string]Entity)
	}
	return cp.instanceMembers
}

func (cp *ClassPrototype) AddInstanceMember(name string, e Entity) {
	cp.InstanceMembers()[name] = e
}

func (cp *ClassPrototype) SourceFile() *ast.SourceFile { return cp.Source }

// Class is a resolved, possibly-monomorphized instance of a ClassPrototype.
type Class struct {
	Base
	Prototype               *ClassPrototype
	TypeArguments           []types.Type
	ClassType               *types.ClassType
	BaseClass               *Class
	ContextualTypeArguments map[string]types.Type
	InstanceID              uuid.UUID

	// fields caches the per-instance Field entities resolved on demand from
	// the prototype's FieldPrototypes, keyed by simple name.
	fields map[string]*Field
}

// Fields returns this instance's field cache, lazily allocating it.
func (c *Class) Fields() map[string]*Field {
	if c.fields == nil {
		c.fields = make(map[string]*Field)
	}
	return c.fields
}

func NewClass(prog *Program, prototype *ClassPrototype, internalName string, typeArgs []types.Type, base *Class) *Class {
	c := &Class{
		Base:                    newBase(KindClass, prototype.SimpleName(), internalName, prototype.Namespace(), prog),
		Prototype:               prototype,
		TypeArguments:           typeArgs,
		BaseClass:               base,
		ContextualTypeArguments: make(map[string]types.Type),
		InstanceID:              uuid.New(),
	}
	c.ClassType = &types.ClassType{Name: internalName, Width: prog.Target.PointerSize(), Owner: c}
	return c
}

// EntityInternalName implements types.Entity so a ClassType can reference its
// owning Class without internal/types importing internal/program.
func (c *Class) EntityInternalName() string { return c.InternalName() }
