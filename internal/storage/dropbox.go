package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
)

// Default Dropbox API hosts. Uploads go to the content host; everything
// else (sharing, delete) goes to the RPC host.
const (
	DefaultAPIBase     = "https://api.dropboxapi.com"
	DefaultContentBase = "https://content.dropboxapi.com"
)

// linkHost / directHost: shared links come back pointing at the web viewer;
// rewriting the host yields a URL that serves the raw file bytes, which is
// what <img src> needs.
const (
	linkHost   = "www.dropbox.com"
	directHost = "dl.dropboxusercontent.com"
)

// Config holds the Dropbox app credentials and optional endpoint overrides
// (tests point the bases at httptest servers).
type Config struct {
	AppKey       string
	AppSecret    string
	RefreshToken string
	TokenURL     string
	APIBase      string
	ContentBase  string
}

// Client performs the three file operations the content resources need.
// Every call first obtains a valid access token from the shared TokenCache.
type Client struct {
	tokens      *TokenCache
	http        *http.Client
	apiBase     string
	contentBase string
	logger      *slog.Logger
}

// New creates a Dropbox client. The TokenCache is constructed here so the
// client and its token state share one lifetime.
func New(cfg Config, logger *slog.Logger) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	contentBase := cfg.ContentBase
	if contentBase == "" {
		contentBase = DefaultContentBase
	}

	return &Client{
		tokens:      NewTokenCache(cfg.AppKey, cfg.AppSecret, cfg.RefreshToken, cfg.TokenURL),
		http:        &http.Client{Timeout: 30 * time.Second},
		apiBase:     apiBase,
		contentBase: contentBase,
		logger:      logger,
	}
}

// uploadArg is the Dropbox-API-Arg header payload for /2/files/upload.
// mode "add" + autorename means an upload never overwrites: on a name
// conflict Dropbox stores the file under "name (1).ext" and reports the
// actual path back.
type uploadArg struct {
	Path       string `json:"path"`
	Mode       string `json:"mode"`
	Autorename bool   `json:"autorename"`
	Mute       bool   `json:"mute"`
}

// Upload stores the file contents under "/<filename>" and returns the path
// Dropbox actually used (path_lower, which may differ on autorename).
func (c *Client) Upload(ctx context.Context, filename string, contents io.Reader) (string, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	arg, err := json.Marshal(uploadArg{
		Path:       "/" + filename,
		Mode:       "add",
		Autorename: true,
		Mute:       false,
	})
	if err != nil {
		return "", fmt.Errorf("storage: encoding upload arg: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.contentBase+"/2/files/upload", contents)
	if err != nil {
		return "", fmt.Errorf("storage: building upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Dropbox-API-Arg", string(arg))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperror.Upstream("storage: Dropbox upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", apperror.Upstream("storage: Dropbox upload",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var result struct {
		PathLower string `json:"path_lower"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("storage: decoding upload response: %w", err)
	}

	return result.PathLower, nil
}

// SharedLink returns a public direct-download URL for an uploaded path.
//
// Dropbox refuses to create a second link for the same path, so when it
// reports shared_link_already_exists we fall back to listing the existing
// links and take the first direct one.
func (c *Client) SharedLink(ctx context.Context, path string) (string, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"path": path,
		"settings": map[string]any{
			"requested_visibility": "public",
		},
	}

	resp, err := c.postJSON(ctx, token, "/2/sharing/create_shared_link_with_settings", body)
	if err != nil {
		return "", apperror.Upstream("storage: creating shared link", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			ErrorSummary string `json:"error_summary"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &apiErr); err == nil &&
			strings.HasPrefix(apiErr.ErrorSummary, "shared_link_already_exists") {
			return c.existingSharedLink(ctx, token, path)
		}
		return "", apperror.Upstream("storage: creating shared link",
			fmt.Errorf("status %d: %s", resp.StatusCode, raw))
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("storage: decoding shared link response: %w", err)
	}

	return directURL(result.URL), nil
}

// existingSharedLink lists the links already issued for path and returns
// the first one. Reached only via the already-exists fallback above.
func (c *Client) existingSharedLink(ctx context.Context, token, path string) (string, error) {
	body := map[string]any{
		"path":        path,
		"direct_only": true,
	}

	resp, err := c.postJSON(ctx, token, "/2/sharing/list_shared_links", body)
	if err != nil {
		return "", apperror.Upstream("storage: listing shared links", err)
	}
	defer resp.Body.Close()

	var result struct {
		Links []struct {
			URL string `json:"url"`
		} `json:"links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("storage: decoding shared link list: %w", err)
	}
	if len(result.Links) == 0 {
		return "", apperror.Upstream("storage: listing shared links",
			fmt.Errorf("link exists for %s but none were returned", path))
	}

	return directURL(result.Links[0].URL), nil
}

// Delete removes the stored object behind a previously issued URL.
//
// BEST-EFFORT ON PURPOSE:
// Delete is only ever called while replacing or removing the record that
// references the file. A leaked object in Dropbox is a cheaper failure than
// blocking that mutation, so errors are logged and swallowed — note the
// missing error return.
func (c *Client) Delete(ctx context.Context, fileURL string) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		c.logger.Error("dropbox delete: getting access token",
			slog.String("url", fileURL),
			slog.String("error", err.Error()),
		)
		return
	}

	u, err := url.Parse(fileURL)
	if err != nil {
		c.logger.Error("dropbox delete: unparseable file URL",
			slog.String("url", fileURL),
			slog.String("error", err.Error()),
		)
		return
	}

	resp, err := c.postJSON(ctx, token, "/2/files/delete_v2", map[string]any{
		"path": u.Path,
	})
	if err != nil {
		c.logger.Error("dropbox delete: request failed",
			slog.String("path", u.Path),
			slog.String("error", err.Error()),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("dropbox delete: rejected",
			slog.String("path", u.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
	}
}

// postJSON issues an authenticated JSON RPC call against the API host.
func (c *Client) postJSON(ctx context.Context, token, endpoint string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s body: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// directURL rewrites a shared-link URL from the web-view host to the
// direct-content host.
func directURL(link string) string {
	return strings.Replace(link, linkHost, directHost, 1)
}
