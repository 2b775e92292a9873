package audit

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	lockstep "github.com/hmizuno/lockstep"
)

// ClientEndpoints extracts {method, path, alias} tuples from a generated
// client file by structural scan of its Endpoints table. The scan reads the
// source AST rather than importing the package, which keeps the auditor
// decoupled from the generator's exact output package.
func ClientEndpoints(path string) ([]lockstep.Endpoint, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("audit: parsing %s: %w", path, err)
	}
	lit := endpointsTable(f)
	if lit == nil {
		return nil, fmt.Errorf("audit: %s declares no Endpoints table", path)
	}
	var eps []lockstep.Endpoint
	for _, el := range lit.Elts {
		entry, ok := el.(*ast.CompositeLit)
		if !ok {
			continue
		}
		if ep, ok := endpointFromEntry(entry); ok {
			eps = append(eps, ep)
		}
	}
	return eps, nil
}

// endpointsTable finds `var Endpoints = []...{...}` at file scope.
func endpointsTable(f *ast.File) *ast.CompositeLit {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != 1 || vs.Names[0].Name != "Endpoints" {
				continue
			}
			if len(vs.Values) != 1 {
				continue
			}
			if lit, ok := vs.Values[0].(*ast.CompositeLit); ok {
				return lit
			}
		}
	}
	return nil
}

// endpointFromEntry digs the Endpoint composite out of one table entry and
// reads its Method/Path/Alias string fields.
func endpointFromEntry(entry *ast.CompositeLit) (lockstep.Endpoint, bool) {
	for _, el := range entry.Elts {
		kv, ok := el.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok || key.Name != "Endpoint" {
			continue
		}
		inner, ok := kv.Value.(*ast.CompositeLit)
		if !ok {
			return lockstep.Endpoint{}, false
		}
		var ep lockstep.Endpoint
		for _, f := range inner.Elts {
			fkv, ok := f.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			name, ok := fkv.Key.(*ast.Ident)
			if !ok {
				continue
			}
			val, ok := stringLit(fkv.Value)
			if !ok {
				continue
			}
			switch name.Name {
			case "Method":
				ep.Method = val
			case "Path":
				ep.Path = val
			case "Alias":
				ep.Alias = val
			}
		}
		return ep, ep.Method != "" && ep.Path != ""
	}
	return lockstep.Endpoint{}, false
}

func stringLit(e ast.Expr) (string, bool) {
	bl, ok := e.(*ast.BasicLit)
	if !ok || bl.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(bl.Value)
	if err != nil {
		return "", false
	}
	return s, true
}
