package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindExecutionFlagsTracksExplicitDryRun(t *testing.T) {
	command := &cobra.Command{}
	values := BindExecutionFlags(command, ExecutionFlagValues{})

	require.NoError(t, command.ParseFlags([]string{}))
	require.Nil(t, ExplicitDryRun(command, values))

	require.NoError(t, command.ParseFlags([]string{"--" + DryRunFlagName}))
	dryRun := ExplicitDryRun(command, values)
	require.NotNil(t, dryRun)
	require.True(t, *dryRun)
}
