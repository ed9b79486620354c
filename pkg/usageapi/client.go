// Package usageapi fetches usage-limit snapshots from the Claude API.
// The endpoint reports utilization percentages and reset times per limit
// window; this package normalizes them into glidelib snapshots.
package usageapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glidetop/glidetop/pkg/credman"
	"github.com/glidetop/glidetop/pkg/glidelib"
	"github.com/glidetop/glidetop/pkg/logger"
)

const (
	// DefaultBaseURL is the production API origin.
	DefaultBaseURL = "https://api.anthropic.com"

	usagePath = "/api/oauth/usage"

	// betaHeader must accompany OAuth bearer tokens on this endpoint.
	betaHeader = "oauth-2025-04-20"

	// DEF_TIMEOUT bounds a single poll including connection setup.
	DEF_TIMEOUT = 10 * time.Second

	// maxResponseSize caps how much of a response body is read. The real
	// payload is a few hundred bytes.
	maxResponseSize = 1 << 20
)

// Client polls the usage endpoint. Safe for use from a single goroutine;
// the dashboard never runs two polls at once.
type Client struct {
	client  *http.Client
	creds   credman.Provider
	baseURL string
	log     logger.Logger
	now     func() time.Time
}

// ClientOpts tune a Client. The zero value selects production defaults.
type ClientOpts struct {
	// BaseURL overrides the API origin, e.g. for a stub server in tests.
	BaseURL string
	// Logger receives poll diagnostics. Discarded when nil.
	Logger logger.Logger
}

// NewClient creates a usage client authenticating through creds. A nil
// http.Client gets the default poll timeout.
func NewClient(client *http.Client, creds credman.Provider, opts *ClientOpts) *Client {
	if opts == nil {
		opts = &ClientOpts{}
	}
	if client == nil {
		client = &http.Client{Timeout: DEF_TIMEOUT}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	return &Client{
		client:  client,
		creds:   creds,
		baseURL: opts.BaseURL,
		log:     opts.Logger,
		now:     time.Now,
	}
}

// Fetch polls the usage endpoint once and returns the parsed snapshot.
// Every failure is a *FetchError; credential failures surface as KindAuth.
func (c *Client) Fetch(ctx context.Context) (*glidelib.Snapshot, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, authErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+usagePath, nil)
	if err != nil {
		return nil, networkErr(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("anthropic-beta", betaHeader)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, networkErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, networkErr(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, authErr(fmt.Errorf("API rejected token: %s", resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, networkErr(fmt.Errorf("API error: %s", resp.Status))
	}

	snap, err := ParseSnapshot(body, c.now())
	if err != nil {
		return nil, err
	}
	c.log.Info("usage poll ok: %d windows", len(snap.Windows))
	return snap, nil
}
