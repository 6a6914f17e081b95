// Package identifier derives the partition key of a test item.
package identifier

import (
	"unicode"
	"unicode/utf8"

	"tsplit/internal/domain"
)

// Resolver turns test items into dotted identifiers
type Resolver struct {
	byClass bool
}

// NewResolver creates a Resolver. With byClass set, every method of a suite
// resolves to the suite's identifier.
func NewResolver(byClass bool) *Resolver {
	return &Resolver{byClass: byClass}
}

// ByClass reports whether methods collapse to their suite
func (r *Resolver) ByClass() bool {
	return r.byClass
}

// Resolve returns the identifier for item, or false when item is not a test.
func (r *Resolver) Resolve(item domain.TestItem) (string, bool) {
	if !IsTest(item) {
		return "", false
	}
	switch item.Kind {
	case domain.KindFunction:
		return FunctionPath(item), true
	case domain.KindMethod:
		if r.byClass {
			return ClassPath(item), true
		}
		return MethodPath(item), true
	}
	return "", false
}

// IsTest reports whether item looks like a runnable test function or method.
func IsTest(item domain.TestItem) bool {
	if !isIdent(item.Name) {
		return false
	}
	switch item.Kind {
	case domain.KindFunction:
		return item.Suite == ""
	case domain.KindMethod:
		return isIdent(item.Suite)
	default:
		return false
	}
}

// FunctionPath is pkg.Func
func FunctionPath(item domain.TestItem) string {
	return join(item.Package, item.Name)
}

// MethodPath is pkg.Suite.Method
func MethodPath(item domain.TestItem) string {
	return join(item.Package, item.Suite+"."+item.Name)
}

// ClassPath is pkg.Suite
func ClassPath(item domain.TestItem) string {
	return join(item.Package, item.Suite)
}

func join(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if first != '_' && !unicode.IsLetter(first) {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
