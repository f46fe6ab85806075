package program

import (
	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/mangle"
	"github.com/tsstack/binder/internal/types"
)

// TypeResolver is the minimal surface Program needs from internal/resolver to
// drive on-demand monomorphization without internal/program importing
// internal/resolver, breaking the natural dependency cycle between the two
// packages.
type TypeResolver interface {
	// ResolveTypeNode resolves one TypeNode within the given source file,
	// honoring contextual type-parameter substitution.
	ResolveTypeNode(node *ast.TypeNode, source *ast.SourceFile, contextualTypeArguments map[string]types.Type, reportNotFound bool) (types.Type, bool)
}

// QueuedExport is a deferred export binding created when an export
// declaration references a name not yet bound.
type QueuedExport struct {
	IsReExport     bool
	ReferencedName string
	ExternalName   string
	Range          ast.Node // for diagnostic reporting
}

// QueuedImport is a deferred import binding created when an import
// declaration references a name not yet exported.
type QueuedImport struct {
	InternalName   string
	ReferencedName string
	Declaration    ast.Node // for diagnostic reporting
}

// Program is the root object the binder populates and the resolver consumes.
type Program struct {
	Sources     []*ast.SourceFile
	Types       map[string]types.Type
	TypeAliases map[string]*ast.TypeNode
	Elements    map[string]Entity
	Exports     map[string]Entity
	Target      types.Target

	QueuedExports []*QueuedExport
	QueuedImports []*QueuedImport

	Diagnostics *diagnostics.Collector
	Resolver    TypeResolver
}

// New builds a Program seeded with the primitive type table and the built-in
// aliases: the primitive table, isize/usize for the target's pointer width,
// and number -> f64 / boolean -> bool. Built-in *entity* registration
// (globals/types beyond the primitive table) is an external collaborator's
// job invoked separately by the binder's Initialize step.
func New(target types.Target) *Program {
	p := &Program{
		Types:       make(map[string]types.Type),
		TypeAliases: make(map[string]*ast.TypeNode),
		Elements:    make(map[string]Entity),
		Exports:     make(map[string]Entity),
		Target:      target,
		Diagnostics: diagnostics.NewCollector(),
	}
	for _, prim := range types.Primitives {
		p.Types[prim.Name] = prim
	}
	p.Types["isize"] = target.PointerType(true)
	p.Types["usize"] = target.PointerType(false)
	p.Types["number"] = types.F64
	p.Types["boolean"] = types.Bool
	return p
}

func (p *Program) SetResolver(r TypeResolver) { p.Resolver = r }

// AddSource appends a parsed source file. Inter-file order matches the order
// sources are added.
func (p *Program) AddSource(src *ast.SourceFile) {
	p.Sources = append(p.Sources, src)
}

// DefineElement inserts e under internalName iff no element is already
// registered there. Returns false, without mutating anything, on collision —
// callers report Duplicate_identifier_0 and keep the first registration.
func (p *Program) DefineElement(internalName string, e Entity) bool {
	if _, exists := p.Elements[internalName]; exists {
		return false
	}
	p.Elements[internalName] = e
	return true
}

// DefineExport inserts e under externalName iff no export is already
// registered there. Returns false on collision.
func (p *Program) DefineExport(externalName string, e Entity) bool {
	if _, exists := p.Exports[externalName]; exists {
		return false
	}
	p.Exports[externalName] = e
	return true
}

// DefineType registers a concrete type under a qualified type name, used for
// class/interface Types once monomorphized. Overwriting is allowed (the
// caller already owns the uniqueness check via Elements).
func (p *Program) DefineType(qualifiedName string, t types.Type) {
	p.Types[qualifiedName] = t
}

// DefineTypeAlias registers a user type alias; type aliases live exclusively
// in TypeAliases, never in Types. Returns false if the name already exists in
// either map.
func (p *Program) DefineTypeAlias(name string, node *ast.TypeNode) bool {
	if _, exists := p.Types[name]; exists {
		return false
	}
	if _, exists := p.TypeAliases[name]; exists {
		return false
	}
	p.TypeAliases[name] = node
	return true
}

// LookupGlobal is a convenience surface over the raw Elements map for callers
// outside the binder/resolver (later compilation passes).
func (p *Program) LookupGlobal(name string) (Entity, bool) {
	e, ok := p.Elements[name]
	return e, ok
}

// LookupType is a direct, bare lookup into the type registry with no alias
// chase or contextual substitution — those are resolver concerns.
func (p *Program) LookupType(name string) (types.Type, bool) {
	t, ok := p.Types[name]
	return t, ok
}

func (p *Program) LookupTypeAlias(name string) (*ast.TypeNode, bool) {
	n, ok := p.TypeAliases[name]
	return n, ok
}

// TypesToString renders the canonical instance-cache key / disambiguation
// name for a type-argument list.
func (p *Program) TypesToString(ts []types.Type, open, close string) string {
	return types.TypesToString(ts, open, close)
}

func (p *Program) AddQueuedExport(q *QueuedExport) { p.QueuedExports = append(p.QueuedExports, q) }
func (p *Program) AddQueuedImport(q *QueuedImport) { p.QueuedImports = append(p.QueuedImports, q) }

// FileQualifiedName builds `<source.Path>/<name>` for a declaration local to
// source.
func FileQualifiedName(source *ast.SourceFile, name string) string {
	return mangle.FileQualified(source.Path, name)
}
