// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for the video library:
//  1. [VideoListView] : Browse the video library with status badges
//  2. [VideoDetailView] : Inspect one video's metadata and generation state
//  3. [ConfirmView] : Confirm a local generation run
//  4. [GenerateView] : Monitor real-time progress updates
//  5. [ResultView] : Display the finished (or failed) video
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the generation Engine, providing
// non-blocking status reporting during runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
