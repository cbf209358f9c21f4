// Package store persists completed check runs in a sqlite ledger so labs
// can track session quality across a collection effort.
package store
