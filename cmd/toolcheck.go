package cmd

import (
	"fmt"

	pbderrors "github.com/heynickdev/pbdev/internal/errors"
	"github.com/heynickdev/pbdev/internal/tools"
)

// resolveToolset resolves the full roster and fails on the first missing
// tool. Used by commands that never install (dev, build); init goes through
// the interactive installer instead.
func resolveToolset() (tools.Toolset, error) {
	resolver := tools.NewResolver()
	ts, missing := resolver.ResolveAll(tools.Required())
	if len(missing) > 0 {
		return nil, missingToolError(missing[0])
	}
	return ts, nil
}

func missingToolError(t tools.Tool) error {
	return pbderrors.MissingTool(t.Name,
		fmt.Sprintf("%s not found; run 'pbdev init' to install missing tools", t.Description))
}
