package flags

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	// RecursiveFlagName removes the discovery depth limit.
	RecursiveFlagName = "recursive"
	// RecursiveFlagShorthand is the shorthand for RecursiveFlagName.
	RecursiveFlagShorthand = "r"
	// RecursiveFlagUsage describes the recursive flag.
	RecursiveFlagUsage = "Scan for repositories at any depth below the root"
	// RepositoriesFlagName accepts an explicit comma-delimited repository list.
	RepositoriesFlagName = "repositories"
	// RepositoriesFlagUsage describes the repositories flag.
	RepositoriesFlagUsage = "Comma-delimited repository paths to maintain instead of scanning"
	// RepositoryFileFlagName names a file listing repositories.
	RepositoryFileFlagName = "file"
	// RepositoryFileFlagShorthand is the shorthand for RepositoryFileFlagName.
	RepositoryFileFlagShorthand = "f"
	// RepositoryFileFlagUsage describes the repository file flag.
	RepositoryFileFlagUsage = "File listing repository paths, one per line, or a YAML manifest; overrides --repositories"
	// RemoteFlagName selects the remote pruned by fetch.
	RemoteFlagName = "remote"
	// RemoteFlagUsage describes the remote flag.
	RemoteFlagUsage = "Remote to fetch and prune (defaults to git's configured remote)"
)

// RepositorySourceFlagValues stores the flags that decide which repositories are maintained.
type RepositorySourceFlagValues struct {
	Recursive      bool
	Repositories   []string
	RepositoryFile string
	Remote         string
}

// BindRepositorySourceFlags attaches the repository selection flags as persistent flags so that
// subcommands share them.
func BindRepositorySourceFlags(command *cobra.Command, defaults RepositorySourceFlagValues) *RepositorySourceFlagValues {
	values := RepositorySourceFlagValues{
		Recursive:      defaults.Recursive,
		Repositories:   append([]string{}, defaults.Repositories...),
		RepositoryFile: defaults.RepositoryFile,
		Remote:         defaults.Remote,
	}
	if command == nil {
		return &values
	}

	persistentFlagSet := command.PersistentFlags()
	AddToggleFlag(persistentFlagSet, &values.Recursive, RecursiveFlagName, RecursiveFlagShorthand, defaults.Recursive, RecursiveFlagUsage)
	persistentFlagSet.StringSliceVar(&values.Repositories, RepositoriesFlagName, values.Repositories, RepositoriesFlagUsage)
	persistentFlagSet.StringVarP(&values.RepositoryFile, RepositoryFileFlagName, RepositoryFileFlagShorthand, defaults.RepositoryFile, RepositoryFileFlagUsage)
	persistentFlagSet.StringVar(&values.Remote, RemoteFlagName, defaults.Remote, RemoteFlagUsage)

	return &values
}

// RepositorySourceOverrides reports the flag values a user set explicitly on the command line.
type RepositorySourceOverrides struct {
	Recursive      *bool
	Repositories   []string
	RepositoryFile *string
	Remote         *string
}

// ExplicitRepositorySourceValues returns only the values whose flags were changed on command.
func ExplicitRepositorySourceValues(command *cobra.Command, values *RepositorySourceFlagValues) RepositorySourceOverrides {
	overrides := RepositorySourceOverrides{}
	if command == nil || values == nil {
		return overrides
	}

	flagSet := command.Flags()
	if flagSet.Changed(RecursiveFlagName) {
		recursive := values.Recursive
		overrides.Recursive = &recursive
	}
	if flagSet.Changed(RepositoriesFlagName) {
		overrides.Repositories = append([]string{}, values.Repositories...)
	}
	if flagSet.Changed(RepositoryFileFlagName) {
		repositoryFile := strings.TrimSpace(values.RepositoryFile)
		overrides.RepositoryFile = &repositoryFile
	}
	if flagSet.Changed(RemoteFlagName) {
		remote := strings.TrimSpace(values.Remote)
		overrides.Remote = &remote
	}
	return overrides
}
