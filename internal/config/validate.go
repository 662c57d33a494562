package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks that every required field is present and that siteUrl is a
// well-formed absolute URL. It accumulates every error rather than stopping
// at the first, so users see a complete report and can fix all issues in one
// pass. Validation runs before any network call is attempted.
func Validate(cfg *Config) error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"siteUrl", cfg.SiteURL},
		{"libraryName", cfg.LibraryName},
		{"folderPath", cfg.FolderPath},
		{"tenantId", cfg.TenantID},
		{"clientId", cfg.ClientID},
		{"clientSecret", cfg.ClientSecret},
	}

	for _, f := range required {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s: must not be empty", f.name))
		}
	}

	if cfg.SiteURL != "" {
		if err := validateSiteURL(cfg.SiteURL); err != nil {
			errs = append(errs, fmt.Errorf("siteUrl: %w", err))
		}
	}

	return errors.Join(errs...)
}

// validateSiteURL requires an absolute URL with a host component.
func validateSiteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL with scheme and host, got %q", raw)
	}

	return nil
}
