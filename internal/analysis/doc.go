// Package analysis extracts periodic structure from recorded trajectories.
package analysis
