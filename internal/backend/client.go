// Package backend talks to the hosted PostgREST-style API that stores all
// persistent data. Rows come back as untyped JSON; the sanitize package is
// responsible for turning them into domain records. Writes use Prefer-header
// upsert semantics, which is also where concurrent-edit conflicts are
// resolved (merge-duplicates means last write wins).
package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/halcyonpress/halcyon/internal/config"
)

const (
	preferMerge  = "resolution=merge-duplicates,return=minimal"
	preferIgnore = "resolution=ignore-duplicates,return=minimal"
)

// Client is a thin wrapper over the REST contract. There is deliberately no
// retry or backoff here: read callers absorb failures into safe defaults and
// write callers surface them to the user.
type Client struct {
	http *resty.Client
}

// New configures the REST client with the service credential.
func New(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BackendURL, "/") + "/rest/v1").
		SetTimeout(cfg.BackendTimeout).
		SetHeader("apikey", cfg.BackendServiceKey).
		SetAuthToken(cfg.BackendServiceKey).
		SetHeader("Accept", "application/json")

	return &Client{http: client}
}

// selectRows runs a filtered select against one resource and returns the raw
// rows.
func (c *Client) selectRows(ctx context.Context, resource string, query map[string]string) ([]map[string]any, error) {
	var rows []map[string]any

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParams(query).
		SetResult(&rows).
		Get("/" + resource)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", resource, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("select %s: unexpected status %d", resource, resp.StatusCode())
	}
	return rows, nil
}

// upsert writes a row, merging on the conflict key. Last write wins.
func (c *Client) upsert(ctx context.Context, resource, conflictKey string, body any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("on_conflict", conflictKey).
		SetHeader("Prefer", preferMerge).
		SetBody(body).
		Post("/" + resource)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", resource, err)
	}
	if resp.IsError() {
		return fmt.Errorf("upsert %s: unexpected status %d", resource, resp.StatusCode())
	}
	return nil
}

// insertIgnoreDuplicates writes a row and silently keeps the existing one on
// a conflict. Used for idempotent signups.
func (c *Client) insertIgnoreDuplicates(ctx context.Context, resource, conflictKey string, body any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("on_conflict", conflictKey).
		SetHeader("Prefer", preferIgnore).
		SetBody(body).
		Post("/" + resource)
	if err != nil {
		return fmt.Errorf("insert %s: %w", resource, err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusConflict {
		return fmt.Errorf("insert %s: unexpected status %d", resource, resp.StatusCode())
	}
	return nil
}

// deleteRows deletes every row matching the filters.
func (c *Client) deleteRows(ctx context.Context, resource string, filters map[string]string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(filters).
		SetHeader("Prefer", "return=minimal").
		Delete("/" + resource)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete %s: unexpected status %d", resource, resp.StatusCode())
	}
	return nil
}

// eq builds a PostgREST equality filter value.
func eq(v string) string { return "eq." + v }
