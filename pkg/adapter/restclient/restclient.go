// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package restclient is an adapter which reaches the crweb REST API
// over HTTP. Its Resource type implements the storeuc.Remote port for
// each entity kind, so a storeuc.Store may mirror the server entities.
package restclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
)

// Client is a REST API client. It is safe to be used concurrently.
type Client struct {
	baseURL *url.URL
	hc      *http.Client
}

// Option is a functional option for the New function.
type Option func(c *Client) error

// WithTimeout limits each request (including the response body
// reading) to d. It must be positive.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("non-positive timeout: %v", d)
		}
		if c.hc != nil {
			return errors.New("http client is already configured")
		}
		c.hc = &http.Client{Timeout: d}
		return nil
	}
}

// WithHTTPClient makes the client to send its requests with hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("nil http client")
		}
		if c.hc != nil {
			return errors.New("http client is already configured")
		}
		c.hc = hc
		return nil
	}
}

// New instantiates a Client for the API which is served at baseURL,
// such as http://localhost:5000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %q", u.Scheme)
	}
	c := &Client{baseURL: u}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if c.hc == nil {
		c.hc = &http.Client{Timeout: 10 * time.Second}
	}
	return c, nil
}

// Cars returns the cars resource. Decoded cars have their absent
// pricing fields filled by model.ApplyDefaults, so records which were
// created before the banded pricing are migrated at load time.
func (c *Client) Cars() *Resource[model.Car] {
	return &Resource[model.Car]{
		c: c, kind: model.KindCar, normalize: model.ApplyDefaults,
	}
}

// Packages returns the tour packages resource.
func (c *Client) Packages() *Resource[model.Package] {
	return &Resource[model.Package]{c: c, kind: model.KindPackage}
}

// Testimonials returns the testimonials resource.
func (c *Client) Testimonials() *Resource[model.Testimonial] {
	return &Resource[model.Testimonial]{c: c, kind: model.KindTestimonial}
}

// Users returns the users directory resource.
func (c *Client) Users() *Resource[model.User] {
	return &Resource[model.User]{c: c, kind: model.KindUser}
}

// SyncUser inserts u or updates the user having the same email, and
// returns the stored user.
func (c *Client) SyncUser(
	ctx context.Context, u model.User,
) (synced model.User, err error) {
	err = c.do(
		ctx, storeuc.VerbSync, model.KindUser,
		http.MethodPost, u, &synced, model.KindUser.String(), "sync",
	)
	return synced, err
}

// Remotes returns all resources, so they may be passed to storeuc.New.
func (c *Client) Remotes() storeuc.Remotes {
	return storeuc.Remotes{
		Cars:         c.Cars(),
		Packages:     c.Packages(),
		Testimonials: c.Testimonials(),
	}
}

// QuoteRequest is the body of a booking quote request.
type QuoteRequest struct {
	CarID      string    `json:"carId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Insurance  bool      `json:"insurance"`
	DistanceKm float64   `json:"distanceKm"`
}

// Quote asks the server to compute the price of a booking.
func (c *Client) Quote(
	ctx context.Context, req QuoteRequest,
) (q model.Quote, err error) {
	err = c.do(
		ctx, storeuc.VerbBook, model.KindCar,
		http.MethodPost, req, &q, "bookings", "quote",
	)
	return q, err
}

// do sends a method request to the path which is made by joining the
// base URL and the elems escaped path segments. The in (if not nil) is sent as
// the JSON body and the response body is decoded into out (if not
// nil). A non-2xx response is returned as a *StatusError which is
// reported for the v verb and k kind.
func (c *Client) do(
	ctx context.Context, v storeuc.Verb, k model.Kind,
	method string, in, out any, elems ...string,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	u := c.baseURL.JoinPath(elems...)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &StatusError{
			Verb:   v,
			Kind:   k,
			Code:   resp.StatusCode,
			Detail: detail(b),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
