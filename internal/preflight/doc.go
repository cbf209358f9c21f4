// Package preflight provides readiness checks for the filesystem paths and
// configuration gazecheck depends on.
//
// The CLI "gazecheck preflight" command runs RunAll before a batch so a
// misconfigured catalog or unwritable output directory is caught up front
// instead of failing every session mid-run. Individual check functions are
// exported for targeted use.
package preflight
