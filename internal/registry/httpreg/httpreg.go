// Package httpreg is the network Registry realisation: a thin JSON client
// over go-retryablehttp with bounded retries and a backoff policy.
package httpreg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/plow-pm/plow/internal/index"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/registry"
)

// Config configures a Registry's HTTP client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Offline, when true, fails every call immediately with a NetworkError
	// instead of attempting a request. Set from `[net] offline` in the
	// workspace config.
	Offline bool
}

// Registry is the HTTP-backed Registry realisation.
type Registry struct {
	cfg    Config
	client *retryablehttp.Client
}

// New constructs an httpreg.Registry. logger is handed to the
// retryablehttp client directly so retry attempts are logged through the
// same sink as everything else.
func New(cfg Config, logger hclog.Logger) *Registry {
	client := &retryablehttp.Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RetryMax:     3,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		Logger:       logger,
	}
	return &Registry{cfg: cfg, client: client}
}

func (r *Registry) networkError(pkg string, err error) error {
	return &plowerr.RegistryError{Kind: plowerr.NetworkError, Package: pkg, Detail: err.Error(), Cause: err}
}

func (r *Registry) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	if r.cfg.Offline {
		return nil, &plowerr.RegistryError{Kind: plowerr.NetworkError, Detail: "registry client is offline"}
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := retryablehttp.NewRequest(method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.client.Do(req)
}

func (r *Registry) AllAvailableVersions(ctx context.Context, name string) ([]index.Record, error) {
	resp, err := r.do(ctx, http.MethodGet, "/packages/"+name+"/versions", nil)
	if err != nil {
		return nil, r.networkError(name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: name, Detail: "package not found"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, r.networkError(name, errors.Errorf("unexpected status %d", resp.StatusCode))
	}
	var records []index.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, r.networkError(name, err)
	}
	return records, nil
}

func (r *Registry) GetPackageVersionMetadata(ctx context.Context, pv registry.PackageVersion) (index.Record, error) {
	path := fmt.Sprintf("/packages/%s/versions/%s", pv.Name, pv.Version)
	resp, err := r.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return index.Record{}, r.networkError(pv.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "version " + pv.Version + " not found"}
	}
	if resp.StatusCode != http.StatusOK {
		return index.Record{}, r.networkError(pv.Name, errors.Errorf("unexpected status %d", resp.StatusCode))
	}
	var rec index.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return index.Record{}, r.networkError(pv.Name, err)
	}
	return rec, nil
}

func (r *Registry) RetrievePackage(ctx context.Context, pv registry.PackageVersion) ([]byte, error) {
	path := fmt.Sprintf("/packages/%s/versions/%s/artifact", pv.Name, pv.Version)
	resp, err := r.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, r.networkError(pv.Name, err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "artifact not found"}
	case http.StatusConflict:
		return nil, &plowerr.RegistryError{Kind: plowerr.ChecksumMismatch, Package: pv.Name, Detail: "registry reported checksum mismatch"}
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	default:
		return nil, r.networkError(pv.Name, errors.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// submitBody is the artifact upload envelope. The server re-validates with
// the same publish lint set before accepting it; this client never tries to
// replicate that check locally.
type submitBody struct {
	Artifact []byte `json:"artifact"`
}

func (r *Registry) SubmitPackage(ctx context.Context, artifact []byte) (index.Record, error) {
	var rec index.Record
	operation := func() error {
		resp, err := r.do(ctx, http.MethodPost, "/packages", submitBody{Artifact: artifact})
		if err != nil {
			return r.networkError("", err)
		}
		defer resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			return json.NewDecoder(resp.Body).Decode(&rec)
		case http.StatusConflict:
			return backoff.Permanent(&plowerr.RegistryError{Kind: plowerr.DuplicateVersion, Detail: "version already published"})
		case http.StatusUnprocessableEntity:
			var diags []plowerr.Diagnostic
			_ = json.NewDecoder(resp.Body).Decode(&diags)
			return backoff.Permanent(plowerr.NewLintFailure(diags))
		default:
			return r.networkError("", errors.Errorf("unexpected status %d", resp.StatusCode))
		}
	}
	// SubmitPackage is not idempotent at the transport layer the way a GET
	// is, so it gets its own, more conservative retry policy layered on
	// top of retryablehttp's per-request retries — a fresh backoff per
	// call, since a reused one would carry over interval growth across
	// unrelated submissions.
	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)); err != nil {
		return index.Record{}, err
	}
	return rec, nil
}
