package driveops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spupload/spupload/internal/graph"
)

// defaultLibraryName is the library name that falls back to the site's
// default drive when no library matches by name. SharePoint provisions the
// default document library with this display name.
const defaultLibraryName = "Documents"

// SiteRef is the parsed form of a site URL: the host and the
// server-relative site collection path.
type SiteRef struct {
	Hostname string
	SitePath string
}

// ParseSiteURL splits a site URL into host and site collection path.
// No network round-trip; failure means the URL is malformed.
func ParseSiteURL(raw string) (SiteRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return SiteRef{}, fmt.Errorf("%w: %w", ErrInvalidSiteURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return SiteRef{}, fmt.Errorf("%w: %q has no scheme or host", ErrInvalidSiteURL, raw)
	}

	return SiteRef{
		Hostname: u.Host,
		SitePath: strings.TrimSuffix(u.Path, "/"),
	}, nil
}

// ResolveSite obtains the site identifier for a SiteRef. It first attempts a
// direct lookup by host name; root sites are addressable that way. Sub-sites
// are not, so when the direct lookup yields nothing usable and a site path is
// configured, a path-qualified lookup runs as fallback. Callers must not
// assume the first form succeeds.
func (s *Session) ResolveSite(ctx context.Context, ref SiteRef) (*graph.Site, error) {
	site, err := s.Meta.SiteByHostname(ctx, ref.Hostname)
	if err == nil && site.ID != "" {
		return site, nil
	}

	if err != nil && !errors.Is(err, graph.ErrNotFound) {
		return nil, err
	}

	if ref.SitePath == "" {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, ref.Hostname)
	}

	s.logger.Debug("direct site lookup failed, trying path-qualified lookup",
		slog.String("hostname", ref.Hostname),
		slog.String("site_path", ref.SitePath),
	)

	site, err = s.Meta.SiteByPath(ctx, ref.Hostname, ref.SitePath)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s%s", ErrSiteNotFound, ref.Hostname, ref.SitePath)
		}

		return nil, err
	}

	if site.ID == "" {
		return nil, fmt.Errorf("%w: %s%s", ErrSiteNotFound, ref.Hostname, ref.SitePath)
	}

	return site, nil
}

// ResolveDrive selects the drive backing the named document library.
// Matching is case-insensitive ordinal (strings.EqualFold, no locale
// folding). When nothing matches and the configured name is "Documents",
// the site's default drive is used — the default library's display name
// varies across tenant localizations while its drive stays addressable
// as the site default.
func (s *Session) ResolveDrive(ctx context.Context, siteID, libraryName string) (*graph.Drive, error) {
	drives, err := s.Meta.SiteDrives(ctx, siteID)
	if err != nil {
		return nil, err
	}

	for i := range drives {
		if strings.EqualFold(drives[i].Name, libraryName) {
			return &drives[i], nil
		}
	}

	if strings.EqualFold(libraryName, defaultLibraryName) {
		s.logger.Debug("no drive named Documents, falling back to site default drive",
			slog.String("site_id", siteID),
		)

		return s.Meta.SiteDefaultDrive(ctx, siteID)
	}

	return nil, fmt.Errorf("%w: %q", ErrLibraryNotFound, libraryName)
}
