// Package source fetches prayer rows from a Baserow table.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doaharian/internal/model"
	"doaharian/internal/util"
	"doaharian/internal/util/logx"
)

// ErrFetchFailure covers every way a fetch can fail: transport errors,
// non-2xx responses and undecodable bodies.
var ErrFetchFailure = errors.New("failed to fetch prayers")

// maxPages bounds how many pages one fetch may read; a table with more
// fails the fetch rather than returning a truncated list.
const maxPages = 50

type Client struct {
	baseURL string
	tableID string
	token   string
	timeout time.Duration
	HTTP    *http.Client
}

func NewClient(baseURL, tableID, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tableID: tableID,
		token:   token,
		timeout: timeout,
		HTTP:    http.DefaultClient,
	}
}

type page struct {
	Count   int            `json:"count"`
	Next    *string        `json:"next"`
	Results []model.Record `json:"results"`
}

// URL is the first page of the table listing.
func (c *Client) URL() string {
	return fmt.Sprintf("%s/api/database/rows/table/%s/?user_field_names=true", c.baseURL, url.PathEscape(c.tableID))
}

// Fetch returns all rows in source order. A zero timeout waits as long as
// ctx allows.
func (c *Client) Fetch(ctx context.Context) ([]model.Record, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()
	out := []model.Record{}
	next := c.URL()
	for i := 0; next != ""; i++ {
		if i == maxPages {
			err := fmt.Errorf("%w: more than %d pages", ErrFetchFailure, maxPages)
			logx.Warnf("source: %v", err)
			return nil, err
		}
		p, err := c.fetchPage(ctx, next)
		if err != nil {
			logx.Warnf("source: %s", util.RedactSecrets(err.Error(), c.token))
			return nil, err
		}
		out = append(out, p.Results...)
		next = ""
		if p.Next != nil && *p.Next != "" {
			if next, err = c.resolveNext(*p.Next); err != nil {
				logx.Warnf("source: %s", util.RedactSecrets(err.Error(), c.token))
				return nil, err
			}
		}
	}
	logx.Infof("source: fetched %d prayers in %s", len(out), time.Since(start).Round(time.Millisecond))
	return out, nil
}

// resolveNext resolves a "next" link against the base URL. The token is
// only ever sent to the configured scheme and host.
func (c *Client) resolveNext(link string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("%w: base url: %v", ErrFetchFailure, err)
	}
	u, err := base.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: next link: %v", ErrFetchFailure, err)
	}
	if u.Scheme != base.Scheme || u.Host != base.Host {
		return "", fmt.Errorf("%w: next link leaves %s://%s", ErrFetchFailure, base.Scheme, base.Host)
	}
	return u.String(), nil
}

func (c *Client) fetchPage(ctx context.Context, u string) (page, error) {
	var p page
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p, fmt.Errorf("%w: status %d", ErrFetchFailure, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return p, fmt.Errorf("%w: decode: %v", ErrFetchFailure, err)
	}
	return p, nil
}
