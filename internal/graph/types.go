package graph

import "time"

// Site represents a SharePoint site resolved through the Graph /sites endpoints.
type Site struct {
	ID          string
	Name        string
	DisplayName string
	WebURL      string
}

// Drive represents a document library's underlying drive.
type Drive struct {
	ID        string
	Name      string
	DriveType string
	WebURL    string
}

// Item represents a drive item (file or folder).
// Fields are normalized from the Graph API response — callers never see raw API data.
type Item struct {
	ID       string
	Name     string
	DriveID  string
	ParentID string
	Size     int64
	ETag     string
	IsFolder bool
	WebURL   string
}

// UploadSession is a resumable upload session returned by CreateUploadSession.
// The UploadURL is pre-authenticated and must never be logged.
type UploadSession struct {
	UploadURL      string
	ExpirationTime time.Time
}
