// Package testsupport provides shared fixtures for tests: a synthetic
// session-log builder driven by a protocol template, plus canned catalog,
// ledger, and metadata inputs.
package testsupport
