// Package main hosts the gazecheck CLI entrypoint and command graph.
//
// The Cobra-based command tree covers single-session checks, concurrent
// batch runs over a data directory, inspection of recorded runs, preflight
// path verification, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
