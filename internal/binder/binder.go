// Package binder walks a parsed AST and materializes it into a program.Program:
// every declaration becomes an entity, placed into the program's element
// directory, its enclosing namespace's member map, the `@global` alias slot
// when decorated, and the file-export directory when exported.
package binder

import (
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/token"
)

// BuiltinInitializer populates primitive globals and built-in types into a
// freshly-constructed Program before any source file is bound. Built-in
// registration is an external collaborator: this package only knows how to
// invoke it, not what it registers.
type BuiltinInitializer interface {
	InitializeBuiltins(prog *program.Program)
}

// Binder holds the transient state of one initialize() pass.
type Binder struct {
	Program *program.Program
}

// Initialize is the binder's entry point. It invokes builtins (if any), binds
// every top-level statement of every source file in Program.Sources, then
// resolves queued imports and, after that, queued exports.
func Initialize(prog *program.Program, builtins BuiltinInitializer) *Binder {
	b := &Binder{Program: prog}
	if builtins != nil {
		builtins.InitializeBuiltins(prog)
	}
	for _, src := range prog.Sources {
		for _, stmt := range src.Statements {
			b.bindStatement(stmt, src, nil)
		}
	}
	b.resolveQueuedImports()
	b.resolveQueuedExports()
	return b
}

func (b *Binder) report(code diagnostics.Code, rng token.Range, args ...string) {
	b.Program.Diagnostics.Report(code, rng, args...)
}

// bindStatement dispatches one top-level or namespace-member statement by
// concrete AST node kind.
func (b *Binder) bindStatement(stmt ast.Statement, source *ast.SourceFile, namespace program.Entity) {
	switch s := stmt.(type) {
	case *ast.NamespaceDeclaration:
		b.bindNamespace(s, source, namespace)
	case *ast.EnumDeclaration:
		b.bindEnum(s, source, namespace)
	case *ast.VariableDeclaration:
		b.bindGlobal(s, source, namespace)
	case *ast.FunctionDeclaration:
		b.bindFreeFunction(s, source, namespace)
	case *ast.ClassDeclaration:
		b.bindClass(s, source, namespace)
	case *ast.InterfaceDeclaration:
		b.bindInterface(s, source, namespace)
	case *ast.TypeDeclarationStatement:
		b.bindTypeAlias(s, source)
	case *ast.ImportDeclaration:
		b.bindImport(s, source)
	case *ast.ExportDeclaration:
		b.bindExport(s, source)
	default:
		panic(diagnostics.NewInternalError("unexpected statement kind %T", stmt))
	}
}

// registerEntity runs the shared registration protocol steps 1-5: duplicate check against
// elements, optional @global alias, namespace member placement or (absent a
// namespace) export placement. Step 6, recursing into members, is the
// caller's job once this returns true. namespace is nil for a top-level
// (file-scope, non-exported-by-default) declaration.
func (b *Binder) registerEntity(e program.Entity, internalName, simpleName string, decorators []*ast.Decorator, exported bool, namespace program.Entity, rng token.Range) bool {
	if !b.Program.DefineElement(internalName, e) {
		b.report(diagnostics.DuplicateIdentifier, rng, internalName)
		return false
	}

	if dec := globalDecorator(decorators); dec != nil {
		if !b.Program.DefineElement(simpleName, e) {
			b.report(diagnostics.DuplicateIdentifier, rng, simpleName)
		}
	}

	if namespace != nil {
		members := namespace.Members()
		if _, exists := members[simpleName]; exists {
			b.report(diagnostics.DuplicateIdentifier, rng, simpleName)
		} else {
			members[simpleName] = e
		}
	} else if exported {
		if !b.Program.DefineExport(internalName, e) {
			b.report(diagnostics.ExportConflictsWithExported, rng, internalName)
		}
	}

	return true
}

func globalDecorator(decorators []*ast.Decorator) *ast.Decorator {
	for _, d := range decorators {
		if d.IsGlobal() {
			return d
		}
	}
	return nil
}

func (b *Binder) bindNamespace(decl *ast.NamespaceDeclaration, source *ast.SourceFile, namespace program.Entity) {
	ns := program.NewNamespace(b.Program, decl.Name.Name, decl.InternalName, namespace, decl)
	applyModifierFlags(ns, decl.Modifiers)
	if !b.registerEntity(ns, decl.InternalName, decl.Name.Name, decl.Decorators, decl.IsExported(), namespace, decl.Rng) {
		return
	}
	for _, member := range decl.Members {
		b.bindStatement(member, source, ns)
	}
}

func (b *Binder) bindEnum(decl *ast.EnumDeclaration, source *ast.SourceFile, namespace program.Entity) {
	e := program.NewEnum(b.Program, decl.Name.Name, decl.InternalName, namespace, decl)
	applyModifierFlags(e, decl.Modifiers)
	if !b.registerEntity(e, decl.InternalName, decl.Name.Name, decl.Decorators, decl.IsExported(), namespace, decl.Rng) {
		return
	}
	for _, v := range decl.Values {
		ev := program.NewEnumValue(b.Program, v.Name.Name, v.InternalName, e, v, v.ConstantValue)
		if _, exists := e.Members()[v.Name.Name]; exists {
			b.report(diagnostics.DuplicateIdentifier, v.Rng, v.Name.Name)
			continue
		}
		if !b.Program.DefineElement(v.InternalName, ev) {
			b.report(diagnostics.DuplicateIdentifier, v.Rng, v.InternalName)
			continue
		}
		e.Members()[v.Name.Name] = ev
	}
}

func (b *Binder) bindGlobal(decl *ast.VariableDeclaration, source *ast.SourceFile, namespace program.Entity) {
	g := program.NewGlobal(b.Program, decl.Name.Name, decl.InternalName, namespace, decl, source)
	applyModifierFlags(g, decl.Modifiers)
	b.registerEntity(g, decl.InternalName, decl.Name.Name, decl.Decorators, decl.IsExported(), namespace, decl.Rng)
}

func (b *Binder) bindFreeFunction(decl *ast.FunctionDeclaration, source *ast.SourceFile, namespace program.Entity) {
	fp := program.NewFunctionPrototype(b.Program, decl.Name.Name, decl.InternalName, namespace, decl, nil, source)
	applyModifierFlags(fp, decl.Modifiers)
	b.registerEntity(fp, decl.InternalName, decl.Name.Name, decl.Decorators, decl.IsExported(), namespace, decl.Rng)
}

func (b *Binder) bindTypeAlias(decl *ast.TypeDeclarationStatement, source *ast.SourceFile) {
	if !b.Program.DefineTypeAlias(decl.Name.Name, decl.Type) {
		b.report(diagnostics.DuplicateIdentifier, decl.Rng, decl.Name.Name)
	}
}

// applyModifierFlags sets the flag bits a declaration's modifier set implies.
// Not every modifier has a flag equivalent (STATIC/GET/SET/PRIVATE/PROTECTED/
// PUBLIC/ABSTRACT are consumed directly by member-placement logic instead).
func applyModifierFlags(e program.Entity, mods ast.ModifierSet) {
	if mods.Has(ast.ModImport) {
		e.SetFlag(program.FlagImported)
	}
	if mods.Has(ast.ModExport) {
		e.SetFlag(program.FlagExported)
	}
	if mods.Has(ast.ModDeclare) {
		e.SetFlag(program.FlagDeclared)
	}
	if mods.Has(ast.ModConst) {
		e.SetFlag(program.FlagConstant)
	}
	if mods.Has(ast.ModReadonly) {
		e.SetFlag(program.FlagReadonly)
	}
	if mods.Has(ast.ModPublic) {
		e.SetFlag(program.FlagPublic)
	}
	if mods.Has(ast.ModProtected) {
		e.SetFlag(program.FlagProtected)
	}
	if mods.Has(ast.ModPrivate) {
		e.SetFlag(program.FlagPrivate)
	}
}
