package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"discogswatch/internal/models"
)

const (
	defaultBaseURL   = "https://api.discogs.com"
	defaultTimeout   = 10 * time.Second
	defaultPerPage   = 50
	defaultUserAgent = "discogswatch/1.0 +https://github.com/discogswatch"

	// Discogs allows 60 authenticated requests per minute.
	requestsPerMinute = 60
)

// StatusError is returned for any non-2xx response from the Discogs API.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discogs API returned status %d for %s", e.Code, e.URL)
}

// IsUnauthorized reports whether err is a rejected-credentials response.
// This is the one condition callers treat as fatal at setup.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
	}
	return false
}

// Client is a minimal Discogs REST client covering the handful of
// endpoints the poller needs. BaseURL and PerPage are exported so tests
// can point the client at a local server and exercise pagination with
// small pages.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	PerPage    int

	token     string
	userAgent string
	limiter   *rate.Limiter
}

// NewClient creates a client authenticating with a personal access token.
// An empty userAgent falls back to the default client identification
// string; Discogs rejects requests without one.
func NewClient(token, userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		BaseURL:    defaultBaseURL,
		PerPage:    defaultPerPage,
		token:      token,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), requestsPerMinute),
	}
}

// get performs one authenticated GET and decodes the JSON body into out.
// When rawOut is non-nil the undecoded body is unmarshalled into it as
// well, so callers can reach fields the typed struct does not cover.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any, rawOut *map[string]any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Discogs token="+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if rawOut != nil {
		if err := json.Unmarshal(body, rawOut); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return nil
}

type oauthIdentity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Identity authenticates and returns the account profile. The profile's
// raw field map is retained on the returned Identity.
func (c *Client) Identity(ctx context.Context) (*models.Identity, error) {
	var ident oauthIdentity
	if err := c.get(ctx, "/oauth/identity", nil, &ident, nil); err != nil {
		return nil, err
	}

	var profile models.Identity
	var raw map[string]any
	if err := c.get(ctx, "/users/"+url.PathEscape(ident.Username), nil, &profile, &raw); err != nil {
		return nil, err
	}
	profile.Username = ident.Username
	profile.Raw = raw
	return &profile, nil
}

// CollectionValue fetches the minimum/median/maximum collection valuation.
// The figures come back as locale-formatted currency strings.
func (c *Client) CollectionValue(ctx context.Context, username string) (*models.CollectionValue, error) {
	var value models.CollectionValue
	path := fmt.Sprintf("/users/%s/collection/value", url.PathEscape(username))
	if err := c.get(ctx, path, nil, &value, nil); err != nil {
		return nil, err
	}
	return &value, nil
}

type foldersResponse struct {
	Folders []models.Folder `json:"folders"`
}

// Folders lists the account's collection folders. Folder 0 ("All") always
// comes first and covers the whole collection.
func (c *Client) Folders(ctx context.Context, username string) ([]models.Folder, error) {
	var resp foldersResponse
	path := fmt.Sprintf("/users/%s/collection/folders", url.PathEscape(username))
	if err := c.get(ctx, path, nil, &resp, nil); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

type pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

type collectionRelease struct {
	ID         int            `json:"id"`
	InstanceID int            `json:"instance_id"`
	BasicInfo  releaseDetails `json:"basic_information"`
}

type releaseDetails struct {
	ID         int                   `json:"id"`
	Title      string                `json:"title"`
	Year       int                   `json:"year"`
	Artists    []models.Artist       `json:"artists"`
	Labels     []models.ReleaseLabel `json:"labels"`
	Formats    []models.Format       `json:"formats"`
	CoverImage string                `json:"cover_image"`
	Thumb      string                `json:"thumb"`
}

type folderReleasesResponse struct {
	Pagination pagination          `json:"pagination"`
	Releases   []collectionRelease `json:"releases"`
}

// ReleasePage is one page of a folder's item list plus its pagination
// envelope.
type ReleasePage struct {
	Releases []models.Release
	Page     int
	Pages    int
	Items    int
}

// FolderReleases fetches a single page of the given folder's items.
func (c *Client) FolderReleases(ctx context.Context, username string, folderID, page, perPage int) (*ReleasePage, error) {
	if perPage <= 0 {
		perPage = c.PerPage
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var resp folderReleasesResponse
	path := fmt.Sprintf("/users/%s/collection/folders/%d/releases", url.PathEscape(username), folderID)
	if err := c.get(ctx, path, query, &resp, nil); err != nil {
		return nil, err
	}

	releases := make([]models.Release, len(resp.Releases))
	for i, r := range resp.Releases {
		releases[i] = convertRelease(r)
	}
	return &ReleasePage{
		Releases: releases,
		Page:     resp.Pagination.Page,
		Pages:    resp.Pagination.Pages,
		Items:    resp.Pagination.Items,
	}, nil
}

// ReleaseAt fetches the folder item at a global index in [0, count).
func (c *Client) ReleaseAt(ctx context.Context, username string, folderID, index int) (*models.Release, error) {
	if index < 0 {
		return nil, fmt.Errorf("release index %d out of range", index)
	}
	page := index/c.PerPage + 1
	offset := index % c.PerPage

	resp, err := c.FolderReleases(ctx, username, folderID, page, c.PerPage)
	if err != nil {
		return nil, err
	}
	if offset >= len(resp.Releases) {
		return nil, fmt.Errorf("release index %d out of range (%d items on page %d)", index, len(resp.Releases), page)
	}
	return &resp.Releases[offset], nil
}

func convertRelease(r collectionRelease) models.Release {
	return models.Release{
		ID:         r.BasicInfo.ID,
		InstanceID: r.InstanceID,
		Title:      r.BasicInfo.Title,
		Year:       r.BasicInfo.Year,
		Artists:    r.BasicInfo.Artists,
		Labels:     r.BasicInfo.Labels,
		Formats:    r.BasicInfo.Formats,
		CoverImage: r.BasicInfo.CoverImage,
		Thumb:      r.BasicInfo.Thumb,
	}
}
