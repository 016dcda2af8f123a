package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is returned for any non-2xx upstream response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("travel api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("travel api: status %d", e.StatusCode)
}

// Client calls the remote travel-search API. Responses populate display
// state only; nothing here touches the itinerary aggregate.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client for the given base URL. hc may be nil, in which
// case a client with a 15s timeout is used.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) FeaturedDestinations(ctx context.Context, limit int) ([]Destination, error) {
	var out struct {
		Destinations []Destination `json:"destinations"`
	}
	if err := c.get(ctx, "/api/destinations/featured", url.Values{"limit": {strconv.Itoa(limit)}}, &out); err != nil {
		return nil, err
	}
	return out.Destinations, nil
}

func (c *Client) FeaturedGuides(ctx context.Context, limit int) ([]Guide, error) {
	var out struct {
		Guides []Guide `json:"guides"`
	}
	if err := c.get(ctx, "/api/guides/featured", url.Values{"limit": {strconv.Itoa(limit)}}, &out); err != nil {
		return nil, err
	}
	return out.Guides, nil
}

func (c *Client) SocialFeed(ctx context.Context, feedType string, limit int) ([]SocialPost, error) {
	var out struct {
		Posts []SocialPost `json:"posts"`
	}
	path := "/api/social/feed/" + url.PathEscape(feedType)
	if err := c.get(ctx, path, url.Values{"limit": {strconv.Itoa(limit)}}, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) SearchFlights(ctx context.Context, req FlightSearchRequest) ([]FlightOffer, error) {
	var out struct {
		Flights []FlightOffer `json:"flights"`
	}
	if err := c.post(ctx, "/api/v1/flights/search", req, &out); err != nil {
		return nil, err
	}
	return out.Flights, nil
}

func (c *Client) SearchHotels(ctx context.Context, req HotelSearchRequest) ([]HotelOffer, error) {
	var out struct {
		Hotels []HotelOffer `json:"hotels"`
	}
	if err := c.post(ctx, "/api/v1/hotels/search", req, &out); err != nil {
		return nil, err
	}
	return out.Hotels, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(resp.Body),
		}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// upstreamMessage pulls a human-readable message out of an error body when
// the upstream sends one ({"error": ...} or {"message": ...}).
func upstreamMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
