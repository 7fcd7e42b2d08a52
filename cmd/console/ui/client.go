package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"feedgate/backend/app/dto"

	json "github.com/goccy/go-json"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Msg)
}

// Client talks to the moderator side of the REST API. It keeps the token
// returned by login and sends it on every later call.
type Client struct {
	BaseURL string
	Header  string
	HTTP    *http.Client
	Token   string
}

func NewClient(baseURL, header string, timeout time.Duration) *Client {
	if header == "" {
		header = "authToken"
	}
	return &Client{BaseURL: baseURL, Header: header, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set(c.Header, c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return resp, &APIError{Status: resp.StatusCode, Msg: e.Error}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

// Login authenticates as a moderator and stores the issued token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out dto.ModeratorLoginResponse
	resp, err := c.do(ctx, http.MethodPost, "/moderator/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return err
	}
	token := resp.Header.Get(c.Header)
	if token == "" {
		return fmt.Errorf("login response carried no %s header", c.Header)
	}
	c.Token = token
	return nil
}

func (c *Client) Feed(ctx context.Context, q dto.FeedQuery) (*dto.FeedResponse, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("sort", q.Sort)
	var out dto.FeedResponse
	if _, err := c.do(ctx, http.MethodGet, "/moderator/feed?"+v.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/moderator/post/"+url.PathEscape(postID), nil, nil)
	return err
}
