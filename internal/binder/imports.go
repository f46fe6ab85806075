package binder

import (
	"strings"

	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/mangle"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/token"
)

func (b *Binder) bindImport(decl *ast.ImportDeclaration, source *ast.SourceFile) {
	if decl.IsNamespaceImport() {
		b.report(diagnostics.OperationNotSupported, decl.Rng)
		return
	}
	for _, spec := range decl.Specifiers {
		referencedName := mangle.FileQualified(decl.ModuleInternalPath, spec.ExternalIdentifier.Name)
		localInternalName := mangle.FileQualified(source.Path, spec.LocalName())
		if e, ok := b.walkExportsChain(referencedName, make(map[string]bool)); ok {
			if !b.Program.DefineElement(localInternalName, e) {
				b.report(diagnostics.DuplicateIdentifier, spec.ExternalIdentifier.Rng, localInternalName)
			}
			continue
		}
		b.Program.AddQueuedImport(&program.QueuedImport{
			InternalName:   localInternalName,
			ReferencedName: referencedName,
			Declaration:    spec.ExternalIdentifier,
		})
	}
}

func (b *Binder) bindExport(decl *ast.ExportDeclaration, source *ast.SourceFile) {
	if decl.IsReexport() {
		for _, spec := range decl.Specifiers {
			referencedName := mangle.FileQualified(*decl.ModuleInternalPath, spec.Identifier.Name)
			externalName := mangle.FileQualified(source.Path, spec.ExternalName())
			if e, ok := b.walkExportsChain(referencedName, make(map[string]bool)); ok {
				if !b.Program.DefineExport(externalName, e) {
					b.report(diagnostics.ExportConflictsWithExported, spec.Identifier.Rng, externalName)
				}
				continue
			}
			b.Program.AddQueuedExport(&program.QueuedExport{
				IsReExport:     true,
				ReferencedName: referencedName,
				ExternalName:   externalName,
				Range:          spec.Identifier,
			})
		}
		return
	}

	for _, spec := range decl.Specifiers {
		externalName := mangle.FileQualified(source.Path, spec.ExternalName())
		referencedName := mangle.FileQualified(source.Path, spec.Identifier.Name)
		if e, ok := b.Program.Elements[referencedName]; ok {
			if !b.Program.DefineExport(externalName, e) {
				b.report(diagnostics.ExportConflictsWithExported, spec.Identifier.Rng, externalName)
			}
			continue
		}
		b.Program.AddQueuedExport(&program.QueuedExport{
			IsReExport:     false,
			ReferencedName: referencedName,
			ExternalName:   externalName,
			Range:          spec.Identifier,
		})
	}
}

// walkExportsChain resolves name against the live exports table, falling
// back to following queued re-export links (cycle-guarded by visited) until
// it reaches either a bound export, a non-re-export queued entry whose
// referenced name is already in elements, or a dead end.
func (b *Binder) walkExportsChain(name string, visited map[string]bool) (program.Entity, bool) {
	if e, ok := b.Program.Exports[name]; ok {
		return e, true
	}
	if visited[name] {
		return nil, false
	}
	visited[name] = true

	q := b.findQueuedExport(name)
	if q == nil {
		return nil, false
	}
	if q.IsReExport {
		return b.walkExportsChain(q.ReferencedName, visited)
	}
	if e, ok := b.Program.Elements[q.ReferencedName]; ok {
		return e, true
	}
	return nil, false
}

func (b *Binder) findQueuedExport(externalName string) *program.QueuedExport {
	for _, q := range b.Program.QueuedExports {
		if q.ExternalName == externalName {
			return q
		}
	}
	return nil
}

// resolveQueuedImports is the first post-pass step: every import that named
// a not-yet-exported member gets one more chance now that every file has
// been bound.
func (b *Binder) resolveQueuedImports() {
	for _, q := range b.Program.QueuedImports {
		e, ok := b.walkExportsChain(q.ReferencedName, make(map[string]bool))
		if !ok {
			module, member := splitQualified(q.ReferencedName)
			b.report(diagnostics.ModuleHasNoExportedMember, rangeOf(q.Declaration), module, member)
			continue
		}
		if !b.Program.DefineElement(q.InternalName, e) {
			b.report(diagnostics.DuplicateIdentifier, rangeOf(q.Declaration), q.InternalName)
		}
	}
}

// resolveQueuedExports is the second post-pass step, run after queued
// imports so a chain that bottoms out on a newly-resolved import still
// closes. A queued entry that was never a re-export (a plain local export
// whose referenced element never appeared) reports Cannot_find_name_0; one
// that was chasing another module's export reports
// Module_0_has_no_exported_member_1.
//
// A fully-cyclic re-export chain (a re-exports from b, b re-exports from a)
// enqueues one entry per participant, and each entry's own walk fails by
// revisiting every other name in the same cycle. Without deduplication that
// reports once per participant instead of once per cycle, so every name
// a failed walk actually visited is remembered in reported and skipped on a
// later queued entry that walks into the same dead end.
func (b *Binder) resolveQueuedExports() {
	reported := make(map[string]bool)
	for _, q := range b.Program.QueuedExports {
		visited := make(map[string]bool)
		e, ok := b.walkExportsChain(q.ReferencedName, visited)
		if ok {
			if !b.Program.DefineExport(q.ExternalName, e) {
				b.report(diagnostics.ExportConflictsWithExported, rangeOf(q.Range), q.ExternalName)
			}
			continue
		}
		if reported[q.ReferencedName] {
			continue
		}
		for name := range visited {
			reported[name] = true
		}
		if q.IsReExport {
			module, member := splitQualified(q.ReferencedName)
			b.report(diagnostics.ModuleHasNoExportedMember, rangeOf(q.Range), module, member)
		} else {
			_, member := splitQualified(q.ReferencedName)
			b.report(diagnostics.CannotFindName, rangeOf(q.Range), member)
		}
	}
}

func splitQualified(name string) (module, member string) {
	i := strings.LastIndex(name, mangle.PathDelimiter)
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}

func rangeOf(n ast.Node) token.Range {
	if n == nil {
		return token.Range{}
	}
	return n.Range()
}
