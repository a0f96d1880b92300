package pathutils

import (
	"strings"
)

const commentLinePrefixConstant = "#"

// RepositoryPathSanitizerConfiguration controls repository path sanitization behavior.
type RepositoryPathSanitizerConfiguration struct {
	// DropCommentLines removes candidates that start with '#', as found in repository list files.
	DropCommentLines bool
}

// RepositoryPathSanitizer normalizes repository path inputs from flags, configuration, and list files.
type RepositoryPathSanitizer struct {
	homeExpander  *HomeExpander
	configuration RepositoryPathSanitizerConfiguration
}

// NewRepositoryPathSanitizer constructs a RepositoryPathSanitizer with default behavior.
func NewRepositoryPathSanitizer() *RepositoryPathSanitizer {
	return NewRepositoryPathSanitizerWithConfiguration(nil, RepositoryPathSanitizerConfiguration{})
}

// NewRepositoryPathSanitizerWithConfiguration constructs a RepositoryPathSanitizer using the provided expander and configuration.
func NewRepositoryPathSanitizerWithConfiguration(homeExpander *HomeExpander, configuration RepositoryPathSanitizerConfiguration) *RepositoryPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RepositoryPathSanitizer{homeExpander: homeExpander, configuration: configuration}
}

// Sanitize trims whitespace, drops empty (and optionally comment) entries, and expands a
// leading '~'. Order is preserved and duplicates are kept. Returns nil when nothing remains.
func (sanitizer *RepositoryPathSanitizer) Sanitize(candidatePaths []string) []string {
	if sanitizer == nil {
		return NewRepositoryPathSanitizer().Sanitize(candidatePaths)
	}

	var sanitizedPaths []string
	for _, candidatePath := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePath)
		if len(trimmedCandidate) == 0 {
			continue
		}
		if sanitizer.configuration.DropCommentLines && strings.HasPrefix(trimmedCandidate, commentLinePrefixConstant) {
			continue
		}
		sanitizedPaths = append(sanitizedPaths, sanitizer.homeExpander.Expand(trimmedCandidate))
	}
	return sanitizedPaths
}
