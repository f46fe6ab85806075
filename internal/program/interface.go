package program

import (
	"github.com/google/uuid"
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/types"
)

// InterfacePrototype specializes ClassPrototype for `interface` declarations:
// same shape, distinct kind tag so the binder and resolver can tell class and
// interface declarations apart without an auxiliary flag.
type InterfacePrototype struct {
	Base
	Declaration     *ast.InterfaceDeclaration
	Source          *ast.SourceFile
	Instances       map[string]*Interface
	instanceMembers map[string]Entity
}

func NewInterfacePrototype(prog *Program, name, internalName string, namespace Entity, decl *ast.InterfaceDeclaration, source *ast.SourceFile) *InterfacePrototype {
	ip := &InterfacePrototype{
		Base:        newBase(KindInterfacePrototype, name, internalName, namespace, prog),
		Declaration: decl,
		Source:      source,
		Instances:   make(map[string]*Interface),
	}
	if decl != nil && decl.IsGeneric() {
		ip.SetFlag(FlagGeneric)
	}
	return ip
}

func (ip *InterfacePrototype) InstanceMembers() map[string]Entity {
	if ip.instanceMembers == nil {
		ip.instanceMembers = make(map[string]Entity)
	}
	return ip.instanceMembers
}

func (ip *InterfacePrototype) AddInstanceMember(name string, e Entity) {
	ip.InstanceMembers()[name] = e
}

func (ip *InterfacePrototype) SourceFile() *ast.SourceFile { return ip.Source }

// Interface is a resolved, possibly-monomorphized instance of an
// InterfacePrototype, preserving the prototype and base back-links with the
// more specific interface types.
type Interface struct {
	Base
	Prototype               *InterfacePrototype
	TypeArguments           []types.Type
	InterfaceType           *types.InterfaceType
	BaseInterface           *Interface
	ContextualTypeArguments map[string]types.Type
	InstanceID              uuid.UUID
}

func NewInterface(prog *Program, prototype *InterfacePrototype, internalName string, typeArgs []types.Type, base *Interface) *Interface {
	i := &Interface{
		Base:                    newBase(KindInterface, prototype.SimpleName(), internalName, prototype.Namespace(), prog),
		Prototype:               prototype,
		TypeArguments:           typeArgs,
		BaseInterface:           base,
		ContextualTypeArguments: make(map[string]types.Type),
		InstanceID:              uuid.New(),
	}
	i.InterfaceType = &types.InterfaceType{Name: internalName, Width: prog.Target.PointerSize(), Owner: i}
	return i
}

func (i *Interface) EntityInternalName() string { return i.InternalName() }
