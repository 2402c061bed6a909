package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// invalidFlagValue reports an unusable flag value as invalid input
func invalidFlagValue(flag, value string) error {
	return domain.NewInvalidInputError(fmt.Sprintf("invalid value %q for --%s", value, flag), nil)
}
