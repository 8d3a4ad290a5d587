package opensky

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kxdev/opensky-mcp/pkg/logger"
)

// Client fetches data from the OpenSky Network REST API. Every fetch is
// a single attempt with one shared timeout; failed calls are reported
// to the caller, never retried here.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *logger.Logger
}

// NewClient creates a new OpenSky API client
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  log.Named("opensky-cli"),
	}
}

// States executes an all-states request and returns the transformed
// aircraft records.
func (c *Client) States(ctx context.Context, req *Request) ([]Aircraft, error) {
	body, err := c.get(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeStates(body)
}

// Flights executes an arrivals/departures request and returns the
// transformed flight records.
func (c *Client) Flights(ctx context.Context, req *Request) ([]Flight, error) {
	body, err := c.get(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeFlights(body)
}

// get issues one GET against the upstream API and returns the raw body.
func (c *Client) get(ctx context.Context, req *Request) ([]byte, error) {
	u := c.baseURL + req.Path
	if len(req.Params) > 0 {
		u += "?" + req.Params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, NewNetworkError(err, "failed to create request for %s", req.Path)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching OpenSky data",
		logger.String("path", req.Path),
		logger.String("query", req.Params.Encode()),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, NewNetworkError(err, "OpenSky API did not respond within %s", c.timeout)
		}
		return nil, NewNetworkError(err, "failed to reach OpenSky API")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewNetworkError(nil, "OpenSky API returned HTTP %d %s for %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), req.Path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError(err, "failed to read response body")
	}

	c.logger.Debug("Fetched OpenSky data",
		logger.String("path", req.Path),
		logger.Int("bytes", len(body)),
	)

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
