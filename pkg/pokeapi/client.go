// Package pokeapi is a minimal client for the public PokeAPI REST API,
// covering the two endpoints the proxy serves from.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrNotFound is returned when the upstream does not know the resource.
var ErrNotFound = errors.New("pokeapi: resource not found")

// Client issues requests against a PokeAPI-compatible base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL selects
// DefaultBaseURL; a nil httpClient gets a 10s-timeout default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{baseURL: baseURL, http: httpClient}
}

// Pokemon fetches /pokemon/{name}. name must already be normalized; PokeAPI
// is case-sensitive and only knows lower-case identifiers.
func (c *Client) Pokemon(ctx context.Context, name string) (*Pokemon, error) {
	var p Pokemon
	if err := c.getJSON(ctx, "/pokemon/"+url.PathEscape(name), &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Species fetches /pokemon-species/{name}, the source of flavor text.
func (c *Client) Species(ctx context.Context, name string) (*Species, error) {
	var s Species
	if err := c.getJSON(ctx, "/pokemon-species/"+url.PathEscape(name), &s); err != nil {
		return nil, err
	}

	return &s, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case res.StatusCode != http.StatusOK:
		return fmt.Errorf("pokeapi: GET %s: unexpected status %d", path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("pokeapi: GET %s: decode: %w", path, err)
	}

	return nil
}
