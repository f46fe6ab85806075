// Package diagnostics is the binder's emitter surface.
//
// Diagnostic transport — where these end up (stderr, an LSP client, ...) — lives
// outside this module; the binder and resolver only ever call Collector.Report.
package diagnostics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsstack/binder/internal/token"
)

// Code names one diagnostic message template, using TypeScript-compiler-style
// names so a caller can match on them directly.
type Code string

const (
	DuplicateIdentifier               Code = "Duplicate_identifier_0"
	ExportConflictsWithExported       Code = "Export_declaration_conflicts_with_exported_declaration_of_0"
	ModuleHasNoExportedMember         Code = "Module_0_has_no_exported_member_1"
	CannotFindName                    Code = "Cannot_find_name_0"
	PropertyDoesNotExistOnType        Code = "Property_0_does_not_exist_on_type_1"
	ExpectedTypeArgumentsButGot       Code = "Expected_0_type_arguments_but_got_1"
	ThisCannotBeReferencedHere        Code = "_this_cannot_be_referenced_in_current_location"
	OperationNotSupported             Code = "Operation_not_supported"
)

// messages maps each Code to a template using positional `_0`, `_1`, ... markers
// that Error() substitutes from Args in order.
var messages = map[Code]string{
	DuplicateIdentifier:         "Duplicate identifier '_0'.",
	ExportConflictsWithExported: "Export declaration conflicts with exported declaration of '_0'.",
	ModuleHasNoExportedMember:   "Module '_0' has no exported member '_1'.",
	CannotFindName:              "Cannot find name '_0'.",
	PropertyDoesNotExistOnType:  "Property '_0' does not exist on type '_1'.",
	ExpectedTypeArgumentsButGot: "Expected _0 type arguments, but got _1.",
	ThisCannotBeReferencedHere:  "'this' cannot be referenced in current location.",
	OperationNotSupported:       "Operation not supported.",
}

// DiagnosticError is one reported diagnostic.
type DiagnosticError struct {
	Code  Code
	Range token.Range
	Args  []string
}

func New(code Code, rng token.Range, args ...string) *DiagnosticError {
	return &DiagnosticError{Code: code, Range: rng, Args: args}
}

func (e *DiagnosticError) Error() string {
	tmpl, ok := messages[e.Code]
	if !ok {
		return string(e.Code)
	}
	msg := tmpl
	for i, arg := range e.Args {
		msg = strings.ReplaceAll(msg, "_"+strconv.Itoa(i), arg)
	}
	return fmt.Sprintf("%s: %s", e.Range, msg)
}

// Collector accumulates diagnostics during a binder/resolver pass.
//
// Binding never aborts on a reported diagnostic: a handler emits and
// returns from its local scope, and outer iteration continues. Collector just
// gathers what was reported; it never stops anything.
//
// Report deduplicates by (Range, Code): the same fault reported twice at the
// same site during one declaration pass is recorded once, since the
// "continue after error" policy means a later pass can walk back over
// ground an earlier one already reported.
type Collector struct {
	diagnostics []*DiagnosticError
	seen        map[dedupKey]bool
}

type dedupKey struct {
	rng  token.Range
	code Code
}

func NewCollector() *Collector {
	return &Collector{seen: make(map[dedupKey]bool)}
}

func (c *Collector) Report(code Code, rng token.Range, args ...string) {
	key := dedupKey{rng: rng, code: code}
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.diagnostics = append(c.diagnostics, New(code, rng, args...))
}

// All returns every diagnostic reported so far, in report order.
func (c *Collector) All() []*DiagnosticError {
	return c.diagnostics
}

func (c *Collector) HasErrors() bool {
	return len(c.diagnostics) > 0
}

// InternalError reports a parser/binder contract violation: an
// AST shape the binder does not expect. It is raised via panic rather than
// reported through the Collector, since it signals a bug upstream of binding
// rather than a user-facing diagnostic.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

func NewInternalError(format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
