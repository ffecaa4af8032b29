// Package ui implements an operator dashboard using bubbletea's Elm architecture.
//
// The dashboard is a single live view of per-song rating aggregates, polling
// the repository on a short interval and on demand via the refresh key.
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Contextual help is displayed via charmbracelet/bubbles/help.
package ui
