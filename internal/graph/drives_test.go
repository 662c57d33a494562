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

func TestSiteDrives_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/drives", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{
			"value": [
				{"id": "drive-1", "name": "Documents", "driveType": "documentLibrary"},
				{"id": "drive-2", "name": "Reports Library", "driveType": "documentLibrary"}
			]
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	drives, err := client.SiteDrives(context.Background(), "site-1")
	require.NoError(t, err)
	require.Len(t, drives, 2)

	assert.Equal(t, "drive-1", drives[0].ID)
	assert.Equal(t, "Documents", drives[0].Name)
	assert.Equal(t, "Reports Library", drives[1].Name)
}

func TestSiteDrives_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"value": []}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	drives, err := client.SiteDrives(context.Background(), "site-1")
	require.NoError(t, err)
	assert.Empty(t, drives)
}

func TestSiteDefaultDrive_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/drive", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"id": "default-drive", "name": "Dokumente", "driveType": "documentLibrary"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	drive, err := client.SiteDefaultDrive(context.Background(), "site-1")
	require.NoError(t, err)

	assert.Equal(t, "default-drive", drive.ID)
	assert.Equal(t, "Dokumente", drive.Name)
}

func TestSiteDefaultDrive_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":"accessDenied"}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.SiteDefaultDrive(context.Background(), "site-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}
