// Package processor dispatches the parsed command line: headless
// search and bookmark listing on stdout, or the GUI reader. It is the
// coordinator between the cli package and the domain components.
package processor
