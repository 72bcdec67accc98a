package assert

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sync"
)

const unavailableExpression = "<unavailable>"

// callText is one call expression found in a source file together with the
// literal text of its first argument.
type callText struct {
	name      string
	startLine int
	endLine   int
	arg       string
}

type sourceFile struct {
	once  sync.Once
	calls []callText
}

// sources caches parsed files by path. Files are parsed once per process.
var sources sync.Map

// sourceExpression returns the literal text of the first argument of the
// call named entry that spans line in file. When several calls match, the
// innermost one wins. Calls of the same span with different conditions
// cannot be told apart by line and report unavailableExpression.
func sourceExpression(file string, line int, entry string) string {
	v, _ := sources.LoadOrStore(file, &sourceFile{})
	sf := v.(*sourceFile)
	sf.once.Do(func() { sf.calls = parseCalls(file) })

	best, ambiguous := -1, false
	for i, c := range sf.calls {
		if c.name != entry || line < c.startLine || line > c.endLine {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		span, bestSpan := c.endLine-c.startLine, sf.calls[best].endLine-sf.calls[best].startLine
		switch {
		case span < bestSpan:
			best, ambiguous = i, false
		case span == bestSpan && c.arg != sf.calls[best].arg:
			ambiguous = true
		}
	}
	if best < 0 || ambiguous {
		return unavailableExpression
	}
	return sf.calls[best].arg
}

func parseCalls(file string) []callText {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil
	}

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, file, src, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	var calls []callText
	ast.Inspect(node, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		name := calleeName(call.Fun)
		if name == "" {
			return true
		}
		arg := conditionNode(call.Args[0])
		calls = append(calls, callText{
			name:      name,
			startLine: fset.Position(call.Pos()).Line,
			endLine:   fset.Position(call.End()).Line,
			arg:       string(src[fset.Position(arg.Pos()).Offset:fset.Position(arg.End()).Offset]),
		})
		return true
	})
	return calls
}

func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	default:
		return ""
	}
}

// conditionNode unwraps `func() bool { return cond }` to cond so lazily
// evaluated conditions read like eager ones.
func conditionNode(arg ast.Expr) ast.Node {
	lit, ok := arg.(*ast.FuncLit)
	if !ok || len(lit.Body.List) != 1 {
		return arg
	}
	ret, ok := lit.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return arg
	}
	return ret.Results[0]
}
