package httpreg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/index"
	"github.com/plow-pm/plow/internal/registry"
)

func testLogger() hclog.Logger {
	return hclog.NewNullLogger()
}

func TestGetPackageVersionMetadataSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/packages/@ns/widget/versions/1.0.0", req.URL.Path)
		_ = json.NewEncoder(w).Encode(index.Record{Name: "@ns/widget", Version: "1.0.0", Cksum: "abc"})
	}))
	defer srv.Close()

	reg := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, testLogger())
	rec, err := reg.GetPackageVersionMetadata(context.TODO(), registry.PackageVersion{Name: "@ns/widget", Version: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "abc", rec.Cksum)
}

func TestGetPackageVersionMetadataNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reg := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, testLogger())
	_, err := reg.GetPackageVersionMetadata(context.TODO(), registry.PackageVersion{Name: "@ns/widget", Version: "9.9.9"})
	assert.Error(t, err)
}

func TestOfflineModeFailsFast(t *testing.T) {
	reg := New(Config{BaseURL: "http://unused.invalid", Offline: true}, testLogger())
	_, err := reg.AllAvailableVersions(context.TODO(), "@ns/widget")
	assert.Error(t, err)
}
