package discovery

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"tsplit/internal/domain"
)

// Parser extracts tests from Go test files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTests returns the tests declared in filePath. Package is left empty;
// the collector fills it in from the module layout.
//
// Two shapes are recognized:
//   - func TestXxx(t *testing.T)
//   - func (s *XxxSuite) TestXxx(), the testify suite convention
func (p *Parser) FindTests(filePath string) ([]domain.TestItem, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("error parsing file %s: %w", filePath, err)
	}

	testingName := importName(file, "testing")

	var items []domain.TestItem
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !isTestName(fn.Name.Name) {
			continue
		}

		if fn.Recv == nil {
			if testingName == "" || !takesTestingT(fn.Type, testingName) {
				continue
			}
			items = append(items, domain.TestItem{
				Name:     fn.Name.Name,
				Kind:     domain.KindFunction,
				FilePath: filePath,
			})
			continue
		}

		suite := receiverType(fn.Recv)
		if suite == "" || fn.Type.Params.NumFields() != 0 {
			continue
		}
		items = append(items, domain.TestItem{
			Suite:    suite,
			Name:     fn.Name.Name,
			Kind:     domain.KindMethod,
			FilePath: filePath,
		})
	}
	return items, nil
}

// isTestName applies the go test rule: Test followed by nothing or by a
// character that is not a lower-case letter. TestMain is not a test.
func isTestName(name string) bool {
	if !strings.HasPrefix(name, "Test") || name == "TestMain" {
		return false
	}
	if len(name) == len("Test") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name[len("Test"):])
	return !unicode.IsLower(r)
}

// importName returns the local name of path in file, or "" when not imported
func importName(file *ast.File, path string) string {
	for _, imp := range file.Imports {
		if strings.Trim(imp.Path.Value, `"`) != path {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" {
				return ""
			}
			return imp.Name.Name
		}
		return path[strings.LastIndex(path, "/")+1:]
	}
	return ""
}

// takesTestingT reports whether ft is func(*testing.T)
func takesTestingT(ft *ast.FuncType, testingName string) bool {
	if ft.Params.NumFields() != 1 || (ft.Results != nil && ft.Results.NumFields() != 0) {
		return false
	}
	star, ok := ft.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "T" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == testingName
}

// receiverType returns the base type name of a method receiver
func receiverType(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) != 1 {
		return ""
	}
	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}
