// Package sources turns the repository selection options into an ordered list of
// repository paths. A repository file wins over an explicit list, and an explicit list
// wins over filesystem discovery.
package sources
