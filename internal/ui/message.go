package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/genregenie/internal/models"
	"github.com/desertthunder/genregenie/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgPredictionComplete
)

// predictionResult is the payload of [MsgPredictionComplete]
type predictionResult struct {
	prediction *models.Prediction
	err        error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// predictionCompleteMsg is the constructor for [MsgPredictionComplete]
func predictionCompleteMsg(result predictionResult) Msg {
	return Msg{kind: MsgPredictionComplete, data: result}
}
