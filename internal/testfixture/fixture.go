// Package testfixture turns small, readable source snippets into the
// ast.SourceFile values the binder consumes, without a real lexer/parser (out
// of scope for this module per spec §1). Multi-file scenarios are encoded as
// golang.org/x/tools/txtar archives — one archive section per source file —
// matching the way the rest of the Go ecosystem encodes "many small named
// text files" as a single literal in a test.
//
// The per-file grammar is a deliberately narrow subset of the real language,
// covering only the declaration shapes the binder's tests need: functions
// (with optional type parameters and parameters), namespaces, classes and
// interfaces (with static/instance fields, methods, and get/set accessor
// pairs), enums, variables, type aliases, imports, and exports. Function and
// method bodies are never modeled, since the binder never looks inside one.
package testfixture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/tsstack/binder/internal/ast"
	"github.com/tsstack/binder/internal/mangle"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/token"
)

// Load parses a txtar archive into ast.SourceFiles and appends them to prog
// in archive order, matching Program's stable inter-file ordering guarantee.
// Each archive file's name (minus a trailing ".ts", if present) becomes both
// its Path and InternalPath.
func Load(prog *program.Program, archive string) []*ast.SourceFile {
	ar := txtar.Parse([]byte(archive))
	files := make([]*ast.SourceFile, 0, len(ar.Files))
	for _, f := range ar.Files {
		path := strings.TrimSuffix(strings.TrimSpace(f.Name), ".ts")
		src := &ast.SourceFile{Path: path, InternalPath: path}
		p := &parser{path: path, lines: splitLines(string(f.Data))}
		src.Statements = p.parseStatements(path, true)
		prog.AddSource(src)
		files = append(files, src)
	}
	return files
}

// ParseFile is Load for a single named source, useful for single-file tests
// that don't need txtar's multi-section archive syntax.
func ParseFile(prog *program.Program, path, body string) *ast.SourceFile {
	src := &ast.SourceFile{Path: path, InternalPath: path}
	p := &parser{path: path, lines: splitLines(body)}
	src.Statements = p.parseStatements(path, true)
	prog.AddSource(src)
	return src
}

var (
	reNamespaceOpen = regexp.MustCompile(`^(export\s+)?namespace\s+(\w+)\s*\{$`)
	reClassOpen     = regexp.MustCompile(`^(export\s+)?(declare\s+)?class\s+(\w+)(<[^>]*>)?(\s+extends\s+(\w[\w<>,\s]*))?\s*\{$`)
	reInterfaceOpen = regexp.MustCompile(`^(export\s+)?interface\s+(\w+)(<[^>]*>)?(\s+extends\s+(\w[\w<>,\s]*))?\s*\{$`)
	reEnumOpen      = regexp.MustCompile(`^(export\s+)?enum\s+(\w+)\s*\{$`)
	reClose         = regexp.MustCompile(`^\}$`)
	reFunction      = regexp.MustCompile(`^(export\s+)?(declare\s+)?function\s+(\w+)(<[^>]*>)?\(([^)]*)\)(\s*:\s*([\w<>,\s]+))?$`)
	reMethod        = regexp.MustCompile(`^(static\s+)?(get\s+|set\s+)?(readonly\s+)?(\w+)(<[^>]*>)?\(([^)]*)\)(\s*:\s*([\w<>,\s]+))?$`)
	reField         = regexp.MustCompile(`^(static\s+)?(readonly\s+)?(\w+)\s*:\s*([\w<>,\s]+)$`)
	reVar           = regexp.MustCompile(`^(export\s+)?(var|let|const)\s+(\w+)\s*:\s*([\w<>,\s]+)$`)
	reTypeAlias     = regexp.MustCompile(`^(export\s+)?type\s+(\w+)\s*=\s*([\w<>,\s]+)$`)
	reEnumValue     = regexp.MustCompile(`^(\w+)(\s*=\s*(-?\d+))?$`)
	reImportNamed   = regexp.MustCompile(`^import\s*\{([^}]*)\}\s*from\s*"([^"]+)"$`)
	reImportNS      = regexp.MustCompile(`^import\s*\*\s*as\s+(\w+)\s*from\s*"([^"]+)"$`)
	reExport        = regexp.MustCompile(`^export\s*\{([^}]*)\}(\s*from\s*"([^"]+)")?$`)
	reGlobalDeco    = regexp.MustCompile(`^@global$`)
)

// parser holds one file's remaining lines.
type parser struct {
	path  string
	lines []string
	pos   int
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		out = append(out, t)
	}
	return out
}

// stripEmptyBody trims a trailing "{}" a function/method declaration may
// carry for readability: bodies are never modeled (the binder never looks
// inside one), so an empty-body suffix is just noise to the grammar.
func stripEmptyBody(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, "{}"))
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	return p.lines[p.pos], true
}

func (p *parser) next() string {
	l := p.lines[p.pos]
	p.pos++
	return l
}

// parseStatements consumes statements until EOF or a lone "}" (which it
// consumes), for enclosingName's body. isTopLevel selects whether a
// directly-nested declaration's internal name is file-qualified (top level)
// or static-member-qualified against enclosingName (nested in a namespace,
// class, or interface). Class and interface members pick their own delimiter:
// static members use the static delimiter, instance fields and methods the
// instance delimiter.
func (p *parser) parseStatements(enclosingName string, isTopLevel bool) []ast.Statement {
	var stmts []ast.Statement
	for {
		line, ok := p.peek()
		if !ok {
			return stmts
		}
		if reClose.MatchString(line) {
			p.next()
			return stmts
		}
		stmts = append(stmts, p.parseStatement(enclosingName, isTopLevel))
	}
}

func (p *parser) rng() token.Range {
	return token.Range{Source: p.path, Start: token.Position{Line: p.pos, Column: 1}, End: token.Position{Line: p.pos, Column: 1}}
}

// setBase fills in the common declBase-promoted fields every *ast.*Declaration
// shares (Name, InternalName, Modifiers, Decorators, Rng), since declBase
// itself is unexported and can't be named as a composite-literal field from
// outside package ast.
func setBase(name, internal string, exported, declared, isConst, isGlobal bool, rng token.Range) (*ast.Identifier, ast.ModifierSet, []*ast.Decorator) {
	mods := ast.NewModifierSet()
	if exported {
		mods[ast.ModExport] = true
	}
	if declared {
		mods[ast.ModDeclare] = true
	}
	if isConst {
		mods[ast.ModConst] = true
	}
	var decorators []*ast.Decorator
	if isGlobal {
		decorators = []*ast.Decorator{{Name: "global", Rng: rng}}
	}
	return &ast.Identifier{Name: name, Rng: rng}, mods, decorators
}

func (p *parser) parseStatement(enclosingName string, isTopLevel bool) ast.Statement {
	line := stripEmptyBody(p.next())

	isGlobal := false
	if reGlobalDeco.MatchString(line) {
		isGlobal = true
		line = stripEmptyBody(p.next())
	}

	rng := p.rng()

	switch {
	case reImportNamed.MatchString(line):
		return parseImportNamed(line, rng)
	case reImportNS.MatchString(line):
		return parseImportNS(line, rng)
	case reExport.MatchString(line):
		return parseExport(line, rng)
	case reNamespaceOpen.MatchString(line):
		m := reNamespaceOpen.FindStringSubmatch(line)
		exported := m[1] != ""
		name := m[2]
		internal := childName(enclosingName, name, isTopLevel)
		decl := &ast.NamespaceDeclaration{}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, internal, exported, false, false, isGlobal, rng)
		decl.InternalName, decl.Rng = internal, rng
		decl.Members = p.parseStatements(internal, false)
		return decl
	case reClassOpen.MatchString(line):
		m := reClassOpen.FindStringSubmatch(line)
		exported := m[1] != ""
		declared := m[2] != ""
		name := m[3]
		typeParams := parseTypeParams(m[4])
		internal := childName(enclosingName, name, isTopLevel)
		decl := &ast.ClassDeclaration{TypeParameters: typeParams}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, internal, exported, declared, false, isGlobal, rng)
		decl.InternalName, decl.Rng = internal, rng
		if m[6] != "" {
			decl.BaseClass = parseTypeString(m[6])
		}
		decl.Members = p.parseStatements(internal, false)
		return decl
	case reInterfaceOpen.MatchString(line):
		m := reInterfaceOpen.FindStringSubmatch(line)
		exported := m[1] != ""
		name := m[2]
		typeParams := parseTypeParams(m[3])
		internal := childName(enclosingName, name, isTopLevel)
		decl := &ast.InterfaceDeclaration{TypeParameters: typeParams}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, internal, exported, false, false, isGlobal, rng)
		decl.InternalName, decl.Rng = internal, rng
		if m[5] != "" {
			decl.BaseInterface = parseTypeString(m[5])
		}
		decl.Members = p.parseStatements(internal, false)
		return decl
	case reEnumOpen.MatchString(line):
		m := reEnumOpen.FindStringSubmatch(line)
		exported := m[1] != ""
		name := m[2]
		internal := childName(enclosingName, name, isTopLevel)
		decl := &ast.EnumDeclaration{}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, internal, exported, false, false, isGlobal, rng)
		decl.InternalName, decl.Rng = internal, rng
		for {
			vline, ok := p.peek()
			if !ok {
				break
			}
			if reClose.MatchString(vline) {
				p.next()
				break
			}
			p.next()
			vrng := p.rng()
			vm := reEnumValue.FindStringSubmatch(strings.TrimSuffix(vline, ","))
			vname := vm[1]
			var value int32
			hasValue := vm[3] != ""
			if hasValue {
				n, _ := strconv.Atoi(vm[3])
				value = int32(n)
			}
			ev := &ast.EnumValueDeclaration{HasValue: hasValue, ConstantValue: value}
			ev.Name, ev.Modifiers, ev.Decorators = setBase(vname, "", false, false, false, false, vrng)
			ev.InternalName, ev.Rng = mangle.StaticMember(internal, vname), vrng
			decl.Values = append(decl.Values, ev)
		}
		return decl
	case reFunction.MatchString(line):
		m := reFunction.FindStringSubmatch(line)
		exported := m[1] != ""
		declared := m[2] != ""
		name := m[3]
		typeParams := parseTypeParams(m[4])
		params := parseParams(m[5])
		internal := childName(enclosingName, name, isTopLevel)
		decl := &ast.FunctionDeclaration{TypeParameters: typeParams, Parameters: params}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, internal, exported, declared, false, isGlobal, rng)
		decl.InternalName, decl.Rng = internal, rng
		if m[7] != "" {
			decl.ReturnType = parseTypeString(m[7])
		}
		return decl
	case reVar.MatchString(line):
		m := reVar.FindStringSubmatch(line)
		exported := m[1] != ""
		isConst := m[2] == "const"
		name := m[3]
		internal := childName(enclosingName, name, isTopLevel)
		decl := &ast.VariableDeclaration{Type: parseTypeString(m[4])}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, internal, exported, false, isConst, isGlobal, rng)
		decl.InternalName, decl.Rng = internal, rng
		return decl
	case reTypeAlias.MatchString(line):
		m := reTypeAlias.FindStringSubmatch(line)
		exported := m[1] != ""
		name := m[2]
		decl := &ast.TypeDeclarationStatement{Type: parseTypeString(m[3])}
		decl.Name, decl.Modifiers, decl.Decorators = setBase(name, "", exported, false, false, false, rng)
		decl.Rng = rng
		return decl
	case reMethod.MatchString(line):
		m := reMethod.FindStringSubmatch(line)
		isStatic := m[1] != ""
		accessor := strings.TrimSpace(m[2])
		readonly := m[3] != ""
		name := m[4]
		typeParams := parseTypeParams(m[5])
		params := parseParams(m[6])
		internal := methodInternalName(enclosingName, name, isStatic)
		decl := &ast.FunctionDeclaration{TypeParameters: typeParams, Parameters: params}
		decl.Name = &ast.Identifier{Name: name, Rng: rng}
		decl.InternalName = internal
		decl.Rng = rng
		mods := ast.NewModifierSet()
		if isStatic {
			mods[ast.ModStatic] = true
		}
		if accessor == "get" {
			mods[ast.ModGet] = true
		} else if accessor == "set" {
			mods[ast.ModSet] = true
		}
		if readonly {
			mods[ast.ModReadonly] = true
		}
		decl.Modifiers = mods
		if m[8] != "" {
			decl.ReturnType = parseTypeString(m[8])
		}
		return decl
	case reField.MatchString(line):
		m := reField.FindStringSubmatch(line)
		isStatic := m[1] != ""
		readonly := m[2] != ""
		name := m[3]
		internal := fieldInternalName(enclosingName, name, isStatic)
		decl := &ast.FieldDeclaration{Type: parseTypeString(m[4])}
		decl.Name = &ast.Identifier{Name: name, Rng: rng}
		decl.InternalName = internal
		decl.Rng = rng
		mods := ast.NewModifierSet()
		if isStatic {
			mods[ast.ModStatic] = true
		}
		if readonly {
			mods[ast.ModReadonly] = true
		}
		decl.Modifiers = mods
		return decl
	default:
		panic(fmt.Sprintf("testfixture: unrecognized statement %q at %s:%d", line, p.path, p.pos))
	}
}

func childName(enclosingName, name string, isTopLevel bool) string {
	if isTopLevel {
		return mangle.FileQualified(enclosingName, name)
	}
	return mangle.StaticMember(enclosingName, name)
}

func methodInternalName(enclosingName, name string, isStatic bool) string {
	if isStatic {
		return mangle.StaticMember(enclosingName, name)
	}
	return mangle.InstanceMember(enclosingName, name)
}

func fieldInternalName(enclosingName, name string, isStatic bool) string {
	if isStatic {
		return mangle.StaticMember(enclosingName, name)
	}
	return mangle.InstanceMember(enclosingName, name)
}

func parseTypeParams(s string) []*ast.TypeParameter {
	s = strings.TrimSpace(strings.Trim(s, "<>"))
	if s == "" {
		return nil
	}
	parts := splitTopLevel(s, ',')
	out := make([]*ast.TypeParameter, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, &ast.TypeParameter{Name: p})
	}
	return out
}

func parseParams(s string) []*ast.Parameter {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := splitTopLevel(s, ',')
	out := make([]*ast.Parameter, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.IndexByte(part, ':')
		if idx < 0 {
			out = append(out, &ast.Parameter{Name: strings.TrimSpace(part)})
			continue
		}
		name := strings.TrimSpace(part[:idx])
		typ := parseTypeString(part[idx+1:])
		out = append(out, &ast.Parameter{Name: name, Type: typ})
	}
	return out
}

// parseTypeString parses a type reference like "i32", "T", or
// "Array<Foo<T>>" into a TypeNode tree.
func parseTypeString(s string) *ast.TypeNode {
	s = strings.TrimSpace(s)
	lt := strings.IndexByte(s, '<')
	if lt < 0 {
		return &ast.TypeNode{Name: s}
	}
	name := strings.TrimSpace(s[:lt])
	inner := s[lt+1:]
	inner = strings.TrimSuffix(strings.TrimRight(inner, " "), ">")
	parts := splitTopLevel(inner, ',')
	args := make([]*ast.TypeNode, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		args = append(args, parseTypeString(p))
	}
	return &ast.TypeNode{Name: name, TypeArguments: args}
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside a <...>
// pair (generic type argument lists within a parameter list).
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func parseImportNamed(line string, rng token.Range) ast.Statement {
	m := reImportNamed.FindStringSubmatch(line)
	specs := parseSpecifierList(m[1])
	decl := &ast.ImportDeclaration{Rng: rng, ModulePath: m[2], ModuleInternalPath: m[2]}
	for _, s := range specs {
		decl.Specifiers = append(decl.Specifiers, &ast.ImportSpecifier{
			ExternalIdentifier: &ast.Identifier{Name: s.left, Rng: rng},
			LocalAlias:         aliasIdent(s.right, rng),
		})
	}
	return decl
}

func parseImportNS(line string, rng token.Range) ast.Statement {
	m := reImportNS.FindStringSubmatch(line)
	return &ast.ImportDeclaration{
		Rng:                rng,
		ModulePath:         m[2],
		ModuleInternalPath: m[2],
		NamespaceAlias:     &ast.Identifier{Name: m[1], Rng: rng},
	}
}

func parseExport(line string, rng token.Range) ast.Statement {
	m := reExport.FindStringSubmatch(line)
	specs := parseSpecifierList(m[1])
	decl := &ast.ExportDeclaration{Rng: rng}
	if m[3] != "" {
		mod := m[3]
		decl.ModulePath = &mod
		decl.ModuleInternalPath = &mod
	}
	for _, s := range specs {
		spec := &ast.ExportSpecifier{Identifier: &ast.Identifier{Name: s.left, Rng: rng}}
		if s.right != "" {
			spec.ExternalIdentifier = &ast.Identifier{Name: s.right, Rng: rng}
		}
		decl.Specifiers = append(decl.Specifiers, spec)
	}
	return decl
}

type aliasPair struct{ left, right string }

// parseSpecifierList parses "a as b, c" into [{a,b},{c,""}].
func parseSpecifierList(s string) []aliasPair {
	var out []aliasPair
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, " as "); idx >= 0 {
			out = append(out, aliasPair{left: strings.TrimSpace(part[:idx]), right: strings.TrimSpace(part[idx+4:])})
		} else {
			out = append(out, aliasPair{left: part})
		}
	}
	return out
}

func aliasIdent(name string, rng token.Range) *ast.Identifier {
	if name == "" {
		return nil
	}
	return &ast.Identifier{Name: name, Rng: rng}
}
