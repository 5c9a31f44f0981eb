// Package ui implements the interactive Genre Genie form using bubbletea's Elm architecture.
//
// The form has one text input, one action control and one result region. The [Model] moves between
// three views:
//  1. [IdleView] : Waiting for a URL to be pasted and submitted
//  2. [RunningView] : The pipeline runs in the background; submission is disabled and a spinner shows the current phase
//  3. [ResolvedView] : The predicted genres, or the error text of a failed run, are shown in the result region
//
// Input errors (an unparseable URL, a missing title) open a dialog over the form instead of
// replacing the result. Dismissing the dialog returns to [IdleView] with the input unchanged.
//
// Progress updates flow through a channel from the [tasks.Predictor], and the outcome is delivered back
// to Update as a message, so the interface never blocks on the network.
package ui
