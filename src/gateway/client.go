package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shareit/src/config"
	"shareit/src/lib"

	"github.com/sony/gobreaker"
)

var ErrServerFailure = errors.New("shareit server failure")

// forwarded request headers
var passHeaders = []string{"Content-Type", "Accept", config.SHARER_USER_HEADER, config.REQUEST_ID_HEADER}

type upstreamResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// ShareItClient calls the ShareIt server through a circuit breaker.
// Transport errors and 5xx answers count as failures.
type ShareItClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

func NewShareItClient(baseURL string, timeout time.Duration) *ShareItClient {
	return &ShareItClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cb:      lib.CircuitBreaker("shareit-server"),
	}
}

// Do sends the request upstream. On a 5xx answer it returns both the
// response and an error wrapping ErrServerFailure.
func (c *ShareItClient) Do(ctx context.Context, method, path, rawQuery string, header http.Header, body []byte) (*upstreamResponse, error) {
	url := c.baseURL + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}
	res, err := c.cb.Execute(func() (any, error) {
		var reader io.Reader
		if len(body) > 0 {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		for _, h := range passHeaders {
			if v := header.Get(h); v != "" {
				req.Header.Set(h, v)
			}
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		up := &upstreamResponse{Status: resp.StatusCode, Header: resp.Header, Body: b}
		if resp.StatusCode >= http.StatusInternalServerError {
			return up, fmt.Errorf("%w: %s %s answered %d", ErrServerFailure, method, path, resp.StatusCode)
		}
		return up, nil
	})
	if res == nil {
		return nil, err
	}
	return res.(*upstreamResponse), err
}
