package models

import (
	"time"
)

// SessionState is the orchestrator state of an upload session. A session
// only exists once a document has loaded, so idle has no stored value.
type SessionState string

const StateDocumentLoaded SessionState = "document_loaded"

// Session is one uploaded statement and everything derived from it.
type Session struct {
	ID             string       `json:"id" db:"id"`
	Filename       string       `json:"filename" db:"filename"`
	FileSize       int64        `json:"file_size" db:"file_size"`
	BlobKey        string       `json:"-" db:"blob_key"`
	ExtractedText  string       `json:"extracted_text,omitempty" db:"extracted_text"`
	PageCount      int          `json:"page_count" db:"page_count"`
	Title          string       `json:"title,omitempty" db:"title"`
	Author         string       `json:"author,omitempty" db:"author"`
	Producer       string       `json:"producer,omitempty" db:"producer"`
	Classification Label        `json:"classification" db:"classification"`
	State          SessionState `json:"state" db:"-"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	ExpiresAt      time.Time    `json:"expires_at" db:"expires_at"`

	Results []ActionResult `json:"results,omitempty" db:"-"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

type UploadResponse struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	FileSize       int64     `json:"file_size"`
	PageCount      int       `json:"page_count"`
	TextLength     int       `json:"text_length"`
	Classification Label     `json:"classification"`
	Notices        []Notice  `json:"notices"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
