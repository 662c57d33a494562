// Package driveops implements the upload pipeline against a SharePoint
// document library: site and library resolution, folder path creation, and
// size-based upload strategy selection.
package driveops

import "errors"

// Sentinel errors for pipeline stage failures.
// Use errors.Is to classify; the wrapped error carries the transport detail.
var (
	ErrInvalidSiteURL  = errors.New("driveops: invalid site URL")
	ErrSiteNotFound    = errors.New("driveops: site not found")
	ErrLibraryNotFound = errors.New("driveops: document library not found")
	ErrFolderCreate    = errors.New("driveops: folder creation failed")
	ErrSessionCreate   = errors.New("driveops: upload session creation failed")
	ErrChunkTransfer   = errors.New("driveops: chunk transfer failed")
	ErrLocalFile       = errors.New("driveops: local file unreadable")
)
