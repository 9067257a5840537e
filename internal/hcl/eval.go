package hcl

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext exposes the process environment as `env` and the directory of
// the workspace file as `workspace_dir`.
func evalContext(workspaceDir string, environ []string) *hcl.EvalContext {
	envVals := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		envVals[k] = cty.StringVal(v)
	}

	env := cty.EmptyObjectVal
	if len(envVals) > 0 {
		env = cty.ObjectVal(envVals)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":           env,
			"workspace_dir": cty.StringVal(workspaceDir),
		},
		Functions: map[string]function.Function{
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
			"coalesce": stdlib.CoalesceFunc,
			"format":   stdlib.FormatFunc,
		},
	}
}

func processEnviron() []string {
	return os.Environ()
}
