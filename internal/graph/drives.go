package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// driveResponse mirrors the Graph API drive JSON response.
// Unexported — callers use Drive via toDrive() normalization.
type driveResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DriveType string `json:"driveType"`
	WebURL    string `json:"webUrl"`
}

// drivesListResponse wraps the value array from GET /sites/{id}/drives.
type drivesListResponse struct {
	Value []driveResponse `json:"value"`
}

func (d *driveResponse) toDrive() Drive {
	return Drive{
		ID:        d.ID,
		Name:      d.Name,
		DriveType: d.DriveType,
		WebURL:    d.WebURL,
	}
}

// SiteDrives returns all drives (document libraries) of a site.
func (c *Client) SiteDrives(ctx context.Context, siteID string) ([]Drive, error) {
	c.logger.Info("listing site drives",
		slog.String("site_id", siteID),
	)

	path := fmt.Sprintf("/sites/%s/drives", url.PathEscape(siteID))

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dlr drivesListResponse
	if err := json.NewDecoder(resp.Body).Decode(&dlr); err != nil {
		return nil, fmt.Errorf("graph: decoding drives response: %w", err)
	}

	drives := make([]Drive, 0, len(dlr.Value))
	for i := range dlr.Value {
		drives = append(drives, dlr.Value[i].toDrive())
	}

	c.logger.Info("listed site drives",
		slog.Int("count", len(drives)),
	)

	return drives, nil
}

// SiteDefaultDrive returns the site's designated default document library.
func (c *Client) SiteDefaultDrive(ctx context.Context, siteID string) (*Drive, error) {
	c.logger.Info("fetching site default drive",
		slog.String("site_id", siteID),
	)

	path := fmt.Sprintf("/sites/%s/drive", url.PathEscape(siteID))

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var dr driveResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("graph: decoding default drive response: %w", err)
	}

	drive := dr.toDrive()

	c.logger.Debug("fetched default drive",
		slog.String("drive_id", drive.ID),
		slog.String("name", drive.Name),
	)

	return &drive, nil
}
