package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/hudhura/core"
	"github.com/trezcool/hudhura/core/schedule"
	"github.com/trezcool/hudhura/core/session"
)

// Client is the single HTTP client bound to the deployment's base URL. Every
// outgoing request reads the current access token from the token store right
// before transmission and attaches it as a bearer credential; no token means
// the request goes out unauthenticated. No retry, no backoff, no queuing;
// failures propagate directly to the caller.
type Client struct {
	base  *url.URL
	http  *http.Client
	store session.TokenStore
}

var (
	_ session.Client  = (*Client)(nil)
	_ schedule.Client = (*Client)(nil)
)

func NewClient(conf *core.Config, store session.TokenStore) (*Client, error) {
	base, err := url.Parse(conf.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing base URL %q", conf.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: conf.RequestTimeout},
		store: store,
	}, nil
}

// Get issues a GET and decodes the JSON response into `into`.
func (c *Client) Get(ctx context.Context, path string, into interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.decode(body, into)
}

// Post issues a POST with a JSON body and decodes the JSON response into `into`.
func (c *Client) Post(ctx context.Context, path string, body, into interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encoding request body")
	}
	respBody, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return c.decode(respBody, into)
}

// GetRaw issues a GET and returns the raw response bytes (non-JSON payloads).
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing path %q", path)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess, err := c.store.Load(); err == nil && sess.Access != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if resp.StatusCode >= 400 {
		return nil, core.NewAPIError(resp.StatusCode, serverMessage(respBody))
	}
	return respBody, nil
}

func (c *Client) decode(body []byte, into interface{}) error {
	if into == nil || len(body) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(body, into), "decoding response body")
}

// serverMessage extracts the human-readable message from an error payload.
// The attendance endpoints use {"error": ...}, the auth ones {"detail": ...}.
func serverMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
