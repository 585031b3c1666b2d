// Package geo measures road distance from the restaurant through the maps
// distance matrix API.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrEmptyAddress    = errors.New("address is required")
	ErrAddressNotFound = errors.New("address not found")
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Origin  string
}

func NewClient(baseURL, apiKey, origin string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Origin:  origin,
	}
}

type matrixResponse struct {
	Status string `json:"status"`
	Error  string `json:"error_message"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Meters int `json:"value"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// DistanceKm returns the driving distance to address in kilometers,
// rounded up to the next 0.1 km so the result never falls into a cheaper
// band or under the range limit. The result is at least 0.1.
func (c *Client) DistanceKm(ctx context.Context, address string) (float64, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return 0, ErrEmptyAddress
	}
	q := url.Values{
		"origins":      {c.Origin},
		"destinations": {address},
		"units":        {"metric"},
		"mode":         {"driving"},
		"key":          {c.APIKey},
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/maps/api/distancematrix/json?"+q.Encode(), nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance matrix: %s", res.Status)
	}

	var out matrixResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, err
	}
	if out.Status != "OK" {
		return 0, fmt.Errorf("distance matrix status %s: %s", out.Status, out.Error)
	}
	if len(out.Rows) == 0 || len(out.Rows[0].Elements) == 0 {
		return 0, ErrAddressNotFound
	}
	el := out.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, fmt.Errorf("%w: %s", ErrAddressNotFound, el.Status)
	}
	return roundUpKm(el.Distance.Meters), nil
}

const minKm = 0.1

func roundUpKm(meters int) float64 {
	km := math.Ceil(float64(meters)/100) / 10
	if km < minKm {
		return minKm
	}
	return km
}
