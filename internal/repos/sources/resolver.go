package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitmaint/internal/repos/dependencies"
	"github.com/temirov/gitmaint/internal/repos/discovery"
	"github.com/temirov/gitmaint/internal/repos/shared"
	pathutils "github.com/temirov/gitmaint/internal/utils/path"
)

const (
	defaultRootConstant                          = "."
	yamlExtensionConstant                        = ".yaml"
	ymlExtensionConstant                         = ".yml"
	lineSeparatorConstant                        = "\n"
	repositoryFileReadErrorTemplateConstant      = "unable to read repository file %s: %w"
	repositoryManifestParseErrorTemplateConstant = "unable to parse repository manifest %s: %w"
	repositoryDiscoveryErrorTemplateConstant     = "unable to discover repositories under %s: %w"
	repositoryFileOverridesListMessageConstant   = "Repository file overrides the explicit repository list"
	repositoriesResolvedMessageConstant          = "Resolved repositories"
	logFieldRepositoryFileConstant               = "repository_file"
	logFieldIgnoredRepositoriesConstant          = "ignored_repositories"
	logFieldSourceConstant                       = "source"
	logFieldCountConstant                        = "count"
)

// Source identifies where a resolved repository list came from.
type Source string

// Repository list sources in precedence order.
const (
	SourceRepositoryFile Source = "file"
	SourceExplicitList   Source = "list"
	SourceDiscovery      Source = "discovery"
)

// Options selects the repositories to maintain.
type Options struct {
	Root           string
	Recursive      bool
	Repositories   []string
	RepositoryFile string
}

// Resolution is the ordered repository list plus its origin.
type Resolution struct {
	Repositories []string
	Source       Source
}

type repositoryManifest struct {
	Repositories []string `yaml:"repositories"`
}

// Resolver resolves repository selection options into repository paths.
type Resolver struct {
	logger        *zap.Logger
	fileSystem    shared.FileSystem
	discoverer    shared.RepositoryDiscoverer
	listSanitizer *pathutils.RepositoryPathSanitizer
	fileSanitizer *pathutils.RepositoryPathSanitizer
}

// NewResolver constructs a Resolver. Nil collaborators fall back to OS-backed defaults.
func NewResolver(logger *zap.Logger, fileSystem shared.FileSystem, discoverer shared.RepositoryDiscoverer) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	homeExpander := pathutils.NewHomeExpander()
	return &Resolver{
		logger:        logger,
		fileSystem:    dependencies.ResolveFileSystem(fileSystem),
		discoverer:    dependencies.ResolveRepositoryDiscoverer(discoverer),
		listSanitizer: pathutils.NewRepositoryPathSanitizerWithConfiguration(homeExpander, pathutils.RepositoryPathSanitizerConfiguration{}),
		fileSanitizer: pathutils.NewRepositoryPathSanitizerWithConfiguration(homeExpander, pathutils.RepositoryPathSanitizerConfiguration{DropCommentLines: true}),
	}
}

// Resolve returns repositories from the repository file when set, else from the explicit
// list when non-empty, else from discovery beneath the root. Relative paths stay relative to
// the process working directory.
func (resolver *Resolver) Resolve(executionContext context.Context, options Options) (Resolution, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return Resolution{}, contextError
	}

	repositoryFile := strings.TrimSpace(options.RepositoryFile)
	if len(repositoryFile) > 0 {
		explicitRepositories := resolver.listSanitizer.Sanitize(options.Repositories)
		if len(explicitRepositories) > 0 {
			resolver.logger.Debug(repositoryFileOverridesListMessageConstant,
				zap.String(logFieldRepositoryFileConstant, repositoryFile),
				zap.Strings(logFieldIgnoredRepositoriesConstant, explicitRepositories),
			)
		}
		repositories, readError := resolver.readRepositoryFile(repositoryFile)
		if readError != nil {
			return Resolution{}, readError
		}
		return resolver.finish(Resolution{Repositories: repositories, Source: SourceRepositoryFile}), nil
	}

	if explicitRepositories := resolver.listSanitizer.Sanitize(options.Repositories); len(explicitRepositories) > 0 {
		return resolver.finish(Resolution{Repositories: explicitRepositories, Source: SourceExplicitList}), nil
	}

	root := defaultRootConstant
	if sanitizedRoots := resolver.listSanitizer.Sanitize([]string{options.Root}); len(sanitizedRoots) > 0 {
		root = sanitizedRoots[0]
	}

	discoveredRepositories, discoveryError := resolver.discoverer.DiscoverRepositories([]string{root}, discovery.OptionsForRecursion(options.Recursive))
	if discoveryError != nil {
		return Resolution{}, fmt.Errorf(repositoryDiscoveryErrorTemplateConstant, root, discoveryError)
	}
	return resolver.finish(Resolution{Repositories: discoveredRepositories, Source: SourceDiscovery}), nil
}

func (resolver *Resolver) finish(resolution Resolution) Resolution {
	resolver.logger.Debug(repositoriesResolvedMessageConstant,
		zap.String(logFieldSourceConstant, string(resolution.Source)),
		zap.Int(logFieldCountConstant, len(resolution.Repositories)),
	)
	return resolution
}

func (resolver *Resolver) readRepositoryFile(repositoryFile string) ([]string, error) {
	repositoryFilePath := resolver.listSanitizer.Sanitize([]string{repositoryFile})[0]

	fileContents, readError := resolver.fileSystem.ReadFile(repositoryFilePath)
	if readError != nil {
		return nil, fmt.Errorf(repositoryFileReadErrorTemplateConstant, repositoryFilePath, readError)
	}

	switch strings.ToLower(filepath.Ext(repositoryFilePath)) {
	case yamlExtensionConstant, ymlExtensionConstant:
		manifest, parseError := parseRepositoryManifest(fileContents)
		if parseError != nil {
			return nil, fmt.Errorf(repositoryManifestParseErrorTemplateConstant, repositoryFilePath, parseError)
		}
		return resolver.listSanitizer.Sanitize(manifest.Repositories), nil
	default:
		return resolver.fileSanitizer.Sanitize(strings.Split(string(fileContents), lineSeparatorConstant)), nil
	}
}

func parseRepositoryManifest(fileContents []byte) (repositoryManifest, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(fileContents))
	decoder.KnownFields(true)

	manifest := repositoryManifest{}
	if decodeError := decoder.Decode(&manifest); decodeError != nil && !errors.Is(decodeError, io.EOF) {
		return repositoryManifest{}, decodeError
	}
	return manifest, nil
}
