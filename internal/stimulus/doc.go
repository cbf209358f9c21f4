// Package stimulus loads the stimulus catalog and the per-session ledger of
// completed stimuli.
//
// The catalog describes every stimulus the experiment can present: its numeric
// id, type (practice or experiment), page count, comprehension question ids,
// and any extra rating screens. It is read-only after construction and safe
// for concurrent readers, so a batch of session workers can share one catalog.
//
// The ledger is the small delimited file the presentation software writes as
// it finishes stimuli; its row order is the presentation order the protocol
// template must reproduce.
package stimulus
