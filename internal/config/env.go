package config

import "os"

// Environment variable names recognized as overrides. Env always wins over
// the config file — the common case is keeping clientSecret out of the file
// entirely and supplying it via CI secrets or a local .env.
const (
	EnvSiteURL      = "SPUPLOAD_SITE_URL"
	EnvLibraryName  = "SPUPLOAD_LIBRARY_NAME"
	EnvFolderPath   = "SPUPLOAD_FOLDER_PATH"
	EnvTenantID     = "SPUPLOAD_TENANT_ID"
	EnvClientID     = "SPUPLOAD_CLIENT_ID"
	EnvClientSecret = "SPUPLOAD_CLIENT_SECRET"
)

// applyEnvOverrides overwrites config fields from the environment.
// Empty environment values are ignored.
func applyEnvOverrides(cfg *Config) {
	setIfPresent(EnvSiteURL, &cfg.SiteURL)
	setIfPresent(EnvLibraryName, &cfg.LibraryName)
	setIfPresent(EnvFolderPath, &cfg.FolderPath)
	setIfPresent(EnvTenantID, &cfg.TenantID)
	setIfPresent(EnvClientID, &cfg.ClientID)
	setIfPresent(EnvClientSecret, &cfg.ClientSecret)
}

func setIfPresent(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
