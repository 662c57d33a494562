package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteByHostname_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/contoso.sharepoint.com", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{
			"id": "contoso.sharepoint.com,guid1,guid2",
			"name": "contoso",
			"displayName": "Contoso Root",
			"webUrl": "https://contoso.sharepoint.com"
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	site, err := client.SiteByHostname(context.Background(), "contoso.sharepoint.com")
	require.NoError(t, err)

	assert.Equal(t, "contoso.sharepoint.com,guid1,guid2", site.ID)
	assert.Equal(t, "Contoso Root", site.DisplayName)
}

func TestSiteByPath_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/contoso.sharepoint.com:/sites/engineering", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{
			"id": "contoso.sharepoint.com,guid3,guid4",
			"name": "engineering",
			"displayName": "Engineering",
			"webUrl": "https://contoso.sharepoint.com/sites/engineering"
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	site, err := client.SiteByPath(context.Background(), "contoso.sharepoint.com", "/sites/engineering")
	require.NoError(t, err)

	assert.Equal(t, "contoso.sharepoint.com,guid3,guid4", site.ID)
}

func TestSiteByHostname_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":"itemNotFound"}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.SiteByHostname(context.Background(), "nosuch.sharepoint.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteByHostname_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{not valid json`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.SiteByHostname(context.Background(), "contoso.sharepoint.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding site response")
}

func TestEncodePathSegments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/sites/engineering", "/sites/engineering"},
		{"spaces", "/sites/team site", "/sites/team%20site"},
		{"hash", "/sites/c#", "/sites/c%23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodePathSegments(tt.in))
		})
	}
}
