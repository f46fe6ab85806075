package binder

import (
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/mangle"
	"github.com/tsstack/binder/internal/program"
)

func (b *Binder) bindClass(decl *ast.ClassDeclaration, source *ast.SourceFile, namespace program.Entity) {
	cp := program.NewClassPrototype(b.Program, decl.Name.Name, decl.InternalName, namespace, decl, source)
	applyModifierFlags(cp, decl.Modifiers)
	if !b.registerEntity(cp, decl.InternalName, decl.Name.Name, decl.Decorators, decl.IsExported(), namespace, decl.Rng) {
		return
	}
	b.bindMembers(cp, decl.Members, source)
}

func (b *Binder) bindInterface(decl *ast.InterfaceDeclaration, source *ast.SourceFile, namespace program.Entity) {
	ip := program.NewInterfacePrototype(b.Program, decl.Name.Name, decl.InternalName, namespace, decl, source)
	applyModifierFlags(ip, decl.Modifiers)
	if !b.registerEntity(ip, decl.InternalName, decl.Name.Name, decl.Decorators, decl.IsExported(), namespace, decl.Rng) {
		return
	}
	b.bindMembers(ip, decl.Members, source)
}

// bindMembers places every field/method declared on a class or interface
// body, dispatching to the field or method placement rules.
func (b *Binder) bindMembers(owner program.MemberContainer, members []ast.Statement, source *ast.SourceFile) {
	for _, m := range members {
		switch decl := m.(type) {
		case *ast.FieldDeclaration:
			b.bindField(owner, decl, source)
		case *ast.FunctionDeclaration:
			b.bindMethod(owner, decl, source)
		default:
			panic(diagnostics.NewInternalError("unexpected class/interface member kind %T", m))
		}
	}
}

// bindField places a static field as a Global (in the owner's static member
// map and in program.elements) or an instance field as a FieldPrototype (in
// the owner's instanceMembers map only).
func (b *Binder) bindField(owner program.MemberContainer, decl *ast.FieldDeclaration, source *ast.SourceFile) {
	if decl.IsStatic() {
		g := program.NewGlobal(b.Program, decl.Name.Name, decl.InternalName, owner, decl, source)
		applyModifierFlags(g, decl.Modifiers)
		b.registerEntity(g, decl.InternalName, decl.Name.Name, decl.Decorators, false, owner, decl.Rng)
		return
	}

	fp := program.NewFieldPrototype(b.Program, decl.Name.Name, decl.InternalName, decl, owner)
	applyModifierFlags(fp, decl.Modifiers)
	if _, exists := owner.InstanceMembers()[decl.Name.Name]; exists {
		b.report(diagnostics.DuplicateIdentifier, decl.Rng, decl.Name.Name)
		return
	}
	owner.AddInstanceMember(decl.Name.Name, fp)
}

// bindMethod places a static method as a FunctionPrototype with no owner
// link (in the owner's static member map and in program.elements), an
// instance method as a FunctionPrototype owned by owner (instanceMembers
// only), or delegates an accessor (get/set modifier) to bindAccessor.
func (b *Binder) bindMethod(owner program.MemberContainer, decl *ast.FunctionDeclaration, source *ast.SourceFile) {
	if decl.IsGetter() || decl.IsSetter() {
		b.bindAccessor(owner, decl, source)
		return
	}

	if decl.IsStatic() {
		fp := program.NewFunctionPrototype(b.Program, decl.Name.Name, decl.InternalName, owner, decl, nil, source)
		applyModifierFlags(fp, decl.Modifiers)
		b.registerEntity(fp, decl.InternalName, decl.Name.Name, decl.Decorators, false, owner, decl.Rng)
		return
	}

	fp := program.NewFunctionPrototype(b.Program, decl.Name.Name, decl.InternalName, owner, decl, owner, source)
	applyModifierFlags(fp, decl.Modifiers)
	if _, exists := owner.InstanceMembers()[decl.Name.Name]; exists {
		b.report(diagnostics.DuplicateIdentifier, decl.Rng, decl.Name.Name)
		return
	}
	owner.AddInstanceMember(decl.Name.Name, fp)
}

// bindAccessor merges a getter or setter method into the shared Property for
// its base name, stored once in owner's static member map regardless of
// whether the accessor pair is static or instance. A static accessor's
// Property is additionally registered in program.elements under the
// class-level property internal name, matching how a plain static field or
// method is independently addressable from outside the class.
func (b *Binder) bindAccessor(owner program.MemberContainer, decl *ast.FunctionDeclaration, source *ast.SourceFile) {
	name := decl.Name.Name
	isStatic := decl.IsStatic()
	isGetter := decl.IsGetter()

	var prefixedName string
	if isGetter {
		prefixedName = mangle.Getter(name)
	} else {
		prefixedName = mangle.Setter(name)
	}

	var protoInternalName string
	var protoOwner program.MemberContainer
	if isStatic {
		protoInternalName = mangle.StaticMember(owner.InternalName(), prefixedName)
	} else {
		protoInternalName = mangle.InstanceMember(owner.InternalName(), prefixedName)
		protoOwner = owner
	}

	fp := program.NewFunctionPrototype(b.Program, name, protoInternalName, owner, decl, protoOwner, source)
	applyModifierFlags(fp, decl.Modifiers)

	members := owner.Members()
	prop, existed := members[name].(*program.Property)
	if !existed {
		if _, nameTaken := members[name]; nameTaken {
			b.report(diagnostics.DuplicateIdentifier, decl.Rng, name)
			return
		}
		propInternalName := mangle.StaticMember(owner.InternalName(), name)
		prop = program.NewProperty(b.Program, name, propInternalName, owner)
		members[name] = prop
		if isStatic {
			if !b.Program.DefineElement(propInternalName, prop) {
				b.report(diagnostics.DuplicateIdentifier, decl.Rng, propInternalName)
			}
		}
	}

	if isGetter {
		if prop.GetterPrototype != nil {
			b.report(diagnostics.DuplicateIdentifier, decl.Rng, name)
			return
		}
		prop.GetterPrototype = fp
	} else {
		if prop.SetterPrototype != nil {
			b.report(diagnostics.DuplicateIdentifier, decl.Rng, name)
			return
		}
		prop.SetterPrototype = fp
	}
}
