// Package app is the composition root of cohort.
//
// Run wires the browser: it loads configuration and preferences, opens the
// JSON log, builds the translator and API client, seeds the location
// history with the starting address and hands everything to the Bubble Tea
// program. A revalidator goroutine asks the program to refresh the visible
// page on a fixed cadence and backs off while the API keeps failing.
//
// Serve wires the backend: the SQLite catalog, optional demo data and the
// chi HTTP server, stopped by cancelling the context.
package app
