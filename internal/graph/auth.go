package graph

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"
)

// defaultScope is the only valid scope form for app-only Graph tokens:
// the effective permissions are whatever the app registration was granted.
const defaultScope = "https://graph.microsoft.com/.default"

// AppCredentials identifies an Azure AD application for the
// client-credentials flow.
type AppCredentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// ClientCredentialsTokenSource returns a TokenSource that acquires app-only
// bearer tokens from Azure AD using the OAuth2 client-credentials flow.
// Tokens are cached and refreshed automatically by the underlying oauth2
// machinery; no token is requested until the first Token() call.
//
// ctx must outlive the TokenSource — if ctx is canceled, token refresh
// will fail. Callers should pass context.Background() for long-lived use.
func ClientCredentialsTokenSource(ctx context.Context, creds AppCredentials, logger *slog.Logger) TokenSource {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := newClientCredentialsConfig(creds)

	logger.Debug("client-credentials token source created",
		slog.String("tenant_id", creds.TenantID),
		slog.String("client_id", creds.ClientID),
	)

	return &tokenBridge{src: cfg.TokenSource(ctx), logger: logger}
}

// newClientCredentialsConfig builds the oauth2 client-credentials config for
// the tenant's Azure AD token endpoint. Split out so tests can redirect the
// token URL at a fake endpoint.
func newClientCredentialsConfig(creds AppCredentials) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     microsoft.AzureADEndpoint(creds.TenantID).TokenURL,
		Scopes:       []string{defaultScope},
	}
}

// tokenBridge adapts an oauth2.TokenSource to the graph.TokenSource interface,
// logging acquisitions at debug level. The access token itself is never logged.
type tokenBridge struct {
	src    oauth2.TokenSource
	logger *slog.Logger
}

func (b *tokenBridge) Token() (string, error) {
	tok, err := b.src.Token()
	if err != nil {
		return "", fmt.Errorf("graph: acquiring token: %w", err)
	}

	b.logger.Debug("bearer token acquired",
		slog.Time("expiry", tok.Expiry),
	)

	return tok.AccessToken, nil
}
