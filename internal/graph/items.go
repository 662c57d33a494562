package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// driveItemResponse mirrors the Graph API driveItem JSON.
// Unexported — callers use Item via toItem() normalization.
type driveItemResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Size            int64            `json:"size"`
	ETag            string           `json:"eTag"`
	WebURL          string           `json:"webUrl"`
	ParentReference *parentRef       `json:"parentReference"`
	Folder          *json.RawMessage `json:"folder"`
}

type parentRef struct {
	ID      string `json:"id"`
	DriveID string `json:"driveId"`
}

type createFolderRequest struct {
	Name             string      `json:"name"`
	Folder           folderFacet `json:"folder"`
	ConflictBehavior string      `json:"@microsoft.graph.conflictBehavior"` //nolint:tagliatelle // Graph API annotation key
}

// folderFacet is the empty folder marker object required by the create call.
type folderFacet struct{}

// toItem normalizes a Graph API driveItem response into our Item type.
func (d *driveItemResponse) toItem() Item {
	item := Item{
		ID:       d.ID,
		Name:     d.Name,
		Size:     d.Size,
		ETag:     d.ETag,
		IsFolder: d.Folder != nil,
		WebURL:   d.WebURL,
	}

	// Normalize DriveID to lowercase — Graph API returns inconsistent casing
	// for drive IDs across endpoints.
	if d.ParentReference != nil {
		item.DriveID = strings.ToLower(d.ParentReference.DriveID)
		item.ParentID = d.ParentReference.ID
	}

	return item
}

// GetChildByName retrieves a direct child of a folder by name.
// parentID "root" addresses the drive root.
// Returns ErrNotFound (via errors.Is) when no such child exists.
func (c *Client) GetChildByName(ctx context.Context, driveID, parentID, name string) (*Item, error) {
	c.logger.Info("getting child by name",
		slog.String("drive_id", driveID),
		slog.String("parent_id", parentID),
		slog.String("name", name),
	)

	path := fmt.Sprintf("/drives/%s/items/%s:/%s:", url.PathEscape(driveID), url.PathEscape(parentID), url.PathEscape(name))

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dir driveItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&dir); err != nil {
		return nil, fmt.Errorf("graph: decoding item response: %w", err)
	}

	item := dir.toItem()

	return &item, nil
}

// CreateFolder creates a new folder under the given parent.
// Uses conflictBehavior "fail" — returns ErrConflict (409) on name collision,
// so callers never silently merge into an unrelated existing resource.
func (c *Client) CreateFolder(ctx context.Context, driveID, parentID, name string) (*Item, error) {
	c.logger.Info("creating folder",
		slog.String("drive_id", driveID),
		slog.String("parent_id", parentID),
		slog.String("name", name),
	)

	path := fmt.Sprintf("/drives/%s/items/%s/children", url.PathEscape(driveID), url.PathEscape(parentID))

	reqBody := createFolderRequest{
		Name:             name,
		Folder:           folderFacet{},
		ConflictBehavior: "fail",
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("graph: marshaling create folder request: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, path, bodyBytes)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dir driveItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&dir); err != nil {
		return nil, fmt.Errorf("graph: decoding create folder response: %w", err)
	}

	item := dir.toItem()

	return &item, nil
}
