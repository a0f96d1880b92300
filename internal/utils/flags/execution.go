// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print the maintenance plan without changing directories or running git"
)

// ExecutionFlagValues stores execution mode flag values.
type ExecutionFlagValues struct {
	DryRun bool
}

// BindExecutionFlags attaches the execution mode flags to the command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionFlagValues) *ExecutionFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	AddToggleFlag(command.PersistentFlags(), &values.DryRun, DryRunFlagName, "", defaults.DryRun, DryRunFlagUsage)
	return &values
}

// ExplicitDryRun reports the dry-run value when the flag was set on the command line.
func ExplicitDryRun(command *cobra.Command, values *ExecutionFlagValues) *bool {
	if command == nil || values == nil || !command.Flags().Changed(DryRunFlagName) {
		return nil
	}
	dryRun := values.DryRun
	return &dryRun
}
