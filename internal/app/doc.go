// Package app wires the formula engine's pieces together for the CLI:
// configuration, logging, table loading, and the operations the commands
// expose.
package app
