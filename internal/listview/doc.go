// Package listview holds the controller behind the patient-list screen.
//
// A Controller derives a query filter from the selected view mode and the
// search text, tracks the page and page size, and reports whether the
// create-list overlay is open by reading the current address. Fetches are
// issued as Request values tagged with a generation; results for anything
// but the newest generation are dropped. The package knows nothing about
// rendering. internal/ui drives it from the Bubble Tea update loop.
package listview
