// Package geo provides the HTTP client for the external distance matrix
// provider. It is the only component allowed to talk to the provider; the
// rest of the system sees distances through ports.DistanceCalculator.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
)

const (
	requestTimeout = 5 * time.Second
	statusOK       = "OK"
)

// distanceMatrixResponse mirrors the provider's JSON shape. Only the
// fields the client reads are declared.
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// Client calls a distance matrix HTTP API to resolve driving distances
// between free-text addresses.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a distance matrix client for the given base URL and
// API key.
func NewClient(baseURL string, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

// DistanceKm resolves the driving distance in kilometers from origin to
// destination. A provider outage or a malformed reply comes back as an
// error wrapping errs.ErrUnavailable; a route the provider cannot build
// comes back as ports.ErrDistanceUnavailable.
func (c *Client) DistanceKm(ctx context.Context, origin string, destination string) (float64, error) {
	if origin == "" {
		return 0, errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return 0, errs.NewValueIsRequiredError("destination")
	}

	query := url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", destination)
	query.Set("key", c.apiKey)
	requestURL := fmt.Sprintf("%s/distancematrix/json?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, errs.NewUnavailableErrorWithCause("distance provider", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errs.NewUnavailableErrorWithCause("distance provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errs.NewUnavailableErrorWithCause(
			"distance provider", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var matrix distanceMatrixResponse
	if err = json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return 0, errs.NewUnavailableErrorWithCause("distance provider", err)
	}

	if matrix.Status != statusOK {
		return 0, errs.NewUnavailableErrorWithCause(
			"distance provider", fmt.Errorf("provider status %q", matrix.Status))
	}

	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("%w: empty matrix for %q -> %q", ports.ErrDistanceUnavailable, origin, destination)
	}

	element := matrix.Rows[0].Elements[0]
	if element.Status != statusOK {
		return 0, fmt.Errorf("%w: element status %q for %q -> %q",
			ports.ErrDistanceUnavailable, element.Status, origin, destination)
	}

	return float64(element.Distance.Value) / 1000, nil
}
