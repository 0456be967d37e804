// Package spypoint is a minimal client for the SpyPoint cloud API, covering
// the three calls the photo fetcher needs: login, camera listing, and the
// photo feed.
package spypoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/errors"
)

const defaultTimeout = 60 * time.Second

// Client talks to the SpyPoint REST API. Login must succeed before the other
// calls; the bearer token it yields is held for the client's lifetime.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client

	token string
}

// New returns an unauthenticated client for the configured account.
func New(settings *conf.SpyPointSettings) *Client {
	return &Client{
		baseURL:    strings.TrimRight(settings.BaseURL, "/"),
		username:   settings.Username,
		password:   settings.Password,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Camera is one camera on the account.
type Camera struct {
	ID   string
	Name string
}

// Photo is one entry from the photo feed.
type Photo struct {
	ID       string
	Filename string
	URL      string

	Taken    time.Time
	HasTaken bool
}

type loginResponse struct {
	Token string `json:"token"`
}

type cameraDTO struct {
	ID     string `json:"id"`
	Config struct {
		Name string `json:"name"`
	} `json:"config"`
}

type photoDTO struct {
	ID         string `json:"id"`
	OriginDate string `json:"originDate"`
	Large      struct {
		Host string `json:"host"`
		Path string `json:"path"`
	} `json:"large"`
}

type photosResponse struct {
	Photos []photoDTO `json:"photos"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(err).
			Component("spypoint").
			Category(errors.CategoryNetwork).
			Context("path", path).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("spypoint api returned %s", resp.Status).
			Component("spypoint").
			Category(errors.CategoryNetwork).
			Context("path", path).
			Context("status", resp.StatusCode).
			Build()
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// Login authenticates and stores the session token.
func (c *Client) Login(ctx context.Context) error {
	body := map[string]string{
		"username": c.username,
		"password": c.password,
	}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v3/user/login", body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.Newf("login succeeded but no token returned").
			Component("spypoint").
			Category(errors.CategoryNetwork).
			Build()
	}
	c.token = resp.Token
	return nil
}

// Cameras lists the cameras on the account.
func (c *Client) Cameras(ctx context.Context) ([]Camera, error) {
	var dtos []cameraDTO
	if err := c.do(ctx, http.MethodGet, "/api/v3/camera/all", nil, &dtos); err != nil {
		return nil, err
	}

	cameras := make([]Camera, 0, len(dtos))
	for _, dto := range dtos {
		cameras = append(cameras, Camera{ID: dto.ID, Name: dto.Config.Name})
	}
	return cameras, nil
}

// Photos returns up to limit recent photos for the camera, newest first as
// the API serves them.
func (c *Client) Photos(ctx context.Context, cameraID string, limit int) ([]Photo, error) {
	body := map[string]any{
		"camera":   []string{cameraID},
		"dateEnd":  "2100-01-01T00:00:00.000Z",
		"favorite": false,
		"hd":       false,
		"tag":      []string{},
		"limit":    limit,
	}

	var resp photosResponse
	if err := c.do(ctx, http.MethodPost, "/api/v3/photo/all", body, &resp); err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(resp.Photos))
	for _, dto := range resp.Photos {
		photos = append(photos, dto.toPhoto())
	}
	return photos, nil
}

// Download fetches the photo bytes.
func (c *Client) Download(ctx context.Context, photo Photo) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photo.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component("spypoint").
			Category(errors.CategoryImageFetch).
			Context("url", photo.URL).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("photo download returned %s", resp.Status).
			Component("spypoint").
			Category(errors.CategoryImageFetch).
			Context("url", photo.URL).
			Build()
	}
	return io.ReadAll(resp.Body)
}

func (dto *photoDTO) toPhoto() Photo {
	p := Photo{ID: dto.ID}
	if dto.Large.Host != "" && dto.Large.Path != "" {
		p.URL = fmt.Sprintf("https://%s/%s", dto.Large.Host, strings.TrimLeft(dto.Large.Path, "/"))
	}
	p.Filename = filenameFromURL(p.URL)

	if ts, ok := parseOriginDate(dto.OriginDate); ok {
		p.Taken = ts
		p.HasTaken = true
	}
	return p
}

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SafeName flattens a string into a filesystem-safe name, never empty.
func SafeName(s string) string {
	s = unsafeNameRe.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "unknown"
	}
	return s
}

func filenameFromURL(url string) string {
	base := url
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return SafeName(base)
}

// parseOriginDate accepts the ISO timestamps the feed uses, with or without a
// trailing Z.
func parseOriginDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z07:00",
		"2006-01-02 15:04:05",
	} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
