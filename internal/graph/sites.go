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

// siteResponse mirrors the Graph API site JSON response.
// Unexported — callers use Site via toSite() normalization.
type siteResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
}

func (s *siteResponse) toSite() Site {
	return Site{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: s.DisplayName,
		WebURL:      s.WebURL,
	}
}

// SiteByHostname resolves a site by its host name alone.
// Works for the root site collection; sub-sites need SiteByPath.
func (c *Client) SiteByHostname(ctx context.Context, hostname string) (*Site, error) {
	c.logger.Info("resolving site by hostname",
		slog.String("hostname", hostname),
	)

	return c.fetchSite(ctx, fmt.Sprintf("/sites/%s", url.PathEscape(hostname)))
}

// SiteByPath resolves a site by host name plus server-relative path,
// e.g. hostname "contoso.sharepoint.com" and path "/sites/engineering".
func (c *Client) SiteByPath(ctx context.Context, hostname, sitePath string) (*Site, error) {
	c.logger.Info("resolving site by path",
		slog.String("hostname", hostname),
		slog.String("site_path", sitePath),
	)

	return c.fetchSite(ctx, fmt.Sprintf("/sites/%s:%s", url.PathEscape(hostname), encodePathSegments(sitePath)))
}

// fetchSite fetches and decodes a single site from the given API path.
// Shared by SiteByHostname and SiteByPath to avoid duplication.
func (c *Client) fetchSite(ctx context.Context, apiPath string) (*Site, error) {
	resp, err := c.Do(ctx, http.MethodGet, apiPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sr siteResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("graph: decoding site response: %w", err)
	}

	site := sr.toSite()

	c.logger.Debug("resolved site",
		slog.String("site_id", site.ID),
		slog.String("display_name", site.DisplayName),
	)

	return &site, nil
}

// encodePathSegments URL-encodes each segment of a slash-separated path.
// Characters like #, ?, %, and spaces are encoded per-segment so the
// resulting path is safe for interpolation into Graph API URLs.
func encodePathSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return strings.Join(segments, "/")
}
