// Package ui is the terminal front end of the patient-list browser, built
// on Bubble Tea.
//
// The Model owns no list state of its own. Mode, search, pagination and the
// overlay flag live in a listview.Controller; the model turns key presses
// into controller calls and runs the fetches the controller issues as
// tea.Cmds. Results come back as messages and are applied through
// Controller.Apply, which drops anything superseded.
//
// The create-list dialog follows the address: it is shown exactly while the
// location carries new_cohort=true. Opening and closing it rewrite the
// address, and a watch on the location history feeds changes made elsewhere
// (for example the back key) into the update loop.
//
// # Key Bindings
//
//   - tab/shift+tab or 1-4: switch between starred, system, my and all lists
//   - /: search by name (debounced); enter applies, esc leaves the field
//   - x: clear search
//   - n/p or arrows: next/previous page (only while paginated)
//   - z: cycle items per page (only while paginated)
//   - s or *: star or unstar the selected list
//   - c: open the create-list dialog
//   - r: refresh, b: back, T: cycle theme, ?: help, q: quit
package ui
