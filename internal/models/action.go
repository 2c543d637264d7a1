package models

import "time"

// Action identifies a re-triggerable step run against a loaded document.
type Action string

const (
	ActionExtraction     Action = "extraction"
	ActionTables         Action = "tables"
	ActionClassification Action = "classification"
)

type NoticeLevel string

const (
	LevelSuccess NoticeLevel = "success"
	LevelInfo    NoticeLevel = "info"
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

// Notice is a user-visible message produced by an action.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// ActionResult is the latest outcome of one action. Running the action again
// replaces it.
type ActionResult struct {
	SessionID    string       `json:"session_id"`
	Action       Action       `json:"action"`
	OK           bool         `json:"ok"`
	Notices      []Notice     `json:"notices"`
	Analysis     string       `json:"analysis,omitempty"`
	AnalysisHTML string       `json:"analysis_html,omitempty"`
	Tables       []PageTables `json:"tables,omitempty"`
	Label        Label        `json:"label,omitempty"`
	CompletedAt  time.Time    `json:"completed_at"`
}
