// Package storage is a thin client for a Supabase-style object store: binary
// uploads under caller-chosen keys, retrievable through stable public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("blob storage not configured")

type Client struct {
	baseURL string
	bucket  string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, bucket, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload stores an object under key and returns its public URL. The key is
// expected to follow the {userId}/{timestamp}_{originalName} convention so
// uploads never collide across users.
func (c *Client) Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}

	uploadURL := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, escapeKey(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, data)
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading object: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("object store returned status %d", resp.StatusCode)
	}

	return c.PublicURL(key), nil
}

// PublicURL returns the durable retrieval URL for a stored key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, escapeKey(key))
}

// escapeKey escapes each path segment but keeps the slashes that structure
// the key.
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
