// Package state holds the result of the most recent list fetch.
//
// # Overview
//
// The list view issues a fetch whenever its filter, page or page size
// changes, and the revalidator issues refreshes on a timer. Fetches run
// off the UI loop, so several can be in flight at once. Store keeps the
// ordering straight:
//
//	Begin(keyChanged) ──> generation N (every older generation is now stale)
//	        │
//	   fetch runs
//	        │
//	Update(N, page, err) ──> applied only if N is still the newest generation
//
// There is no explicit cancellation here: a superseded request simply loses,
// whatever order the responses arrive in.
//
// # Loading flags
//
//   - IsLoading: a request is in flight and nothing is shown for its key
//   - IsRevalidating: any request is in flight, including a refresh of shown data
//
// Begin(true) clears items because they belong to a different filter or
// page. Begin(false) keeps them so a refresh never blanks the table.
//
// # Error Handling
//
// A failed fetch keeps the previous items, records LastError and bumps
// ConsecutiveFailures, which the revalidator uses for backoff. A success
// resets the counter. Snapshot returns deep copies so callers can never
// mutate stored state.
package state
