// Package ui implements the interactive form surface using bubbletea's Elm
// architecture.
//
// The TUI drives one linear run at a time:
//  1. [FormView] : Collect city, mode, track limit, mode parameter, publish flag
//  2. [RunningView] : Spinner plus pipeline progress messages
//  3. [ResultsView] : Track list, weather banner, and publish outcome
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Progress updates flow through a channel from the MixEngine, providing
// non-blocking status reporting during a run. A failed weather lookup or an
// empty result set returns to the form with the error line set; it never
// quits the program.
//
// Keyboard navigation uses vim-style bindings (j/k to move focus, h/l to
// adjust the focused field, enter to run, esc to go back, q to quit).
package ui
