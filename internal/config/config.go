// Package config loads and validates the uploader configuration from a JSON
// file, with environment variable overrides for credential material.
package config

// Config holds the six required settings for one upload run.
// Immutable once loaded — the orchestrator receives it by value semantics
// and never mutates it.
type Config struct {
	SiteURL      string `json:"siteUrl"`
	LibraryName  string `json:"libraryName"`
	FolderPath   string `json:"folderPath"`
	TenantID     string `json:"tenantId"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}
