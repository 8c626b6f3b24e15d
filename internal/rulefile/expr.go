package rulefile

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/yacobolo/jadzia"
)

// compileExpr turns an !expr scalar into a deferred computation. The program
// is compiled once; it runs against the options of each conversion.
func compileExpr(src string) (jadzia.Func, error) {
	program, err := expr.Compile(src)
	if err != nil {
		return nil, err
	}
	return func(opts jadzia.Options) (jadzia.Node, error) {
		out, err := expr.Run(program, exprEnv(opts))
		if err != nil {
			return nil, fmt.Errorf("evaluate %q: %w", src, err)
		}
		return jadzia.Value(out), nil
	}, nil
}

// exprEnv exposes the options record to expressions. Vars are available both
// under "vars" and as top-level names; option fields take precedence.
func exprEnv(opts jadzia.Options) map[string]any {
	env := make(map[string]any, len(opts.Vars)+5)
	for k, v := range opts.Vars {
		env[k] = v
	}
	env["unit"] = opts.Unit
	env["sort"] = opts.Sort
	env["indent"] = opts.Indent
	env["customs"] = opts.Customs
	env["vars"] = opts.Vars
	return env
}
