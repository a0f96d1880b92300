// Package maintenance runs the per-repository maintenance sequence: garbage
// collection, remote-tracking branch pruning, and a stash count that warns when
// a working copy has stashed changes.
//
// Service executes the sequence inside a WorkingDirectoryScope so the process
// working directory is restored after every repository. CommandBuilder wires the
// Cobra commands that resolve repositories and drive the Service.
package maintenance
