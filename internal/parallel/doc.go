// Package parallel runs a bounded-concurrency set of independent tasks to
// completion, regardless of whether any of them fail.
//
// This backs the table reader's concurrent group-loading mode: each task
// is one group reader's SetWindow call, and a failing group must never
// cancel its siblings — every task runs to completion and its error (if
// any) is reported back to the caller for logging, not for early exit.
package parallel
