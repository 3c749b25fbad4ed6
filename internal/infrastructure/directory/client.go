// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package directory implements the user directory port against an HTTP
// directory service. The NATS request/reply adapter is the default; this
// one is selected with USER_DIRECTORY_MODE=http.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/freetogether/scheduling-service/internal/domain/model"
	"github.com/freetogether/scheduling-service/internal/domain/port"
	"github.com/freetogether/scheduling-service/pkg/errors"
	"github.com/freetogether/scheduling-service/pkg/httpclient"
)

// bearerAuthRoundTripper injects the configured bearer token into every
// outgoing directory request
type bearerAuthRoundTripper struct {
	token string
}

func (rt *bearerAuthRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if rt.token != "" {
		req.Header.Set("Authorization", "Bearer "+rt.token)
	}
	return next(req)
}

// Client is the HTTP user directory adapter
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// NewClient creates a new HTTP user directory client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required for the user directory client")
	}

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}

	client := &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
	}
	client.httpClient.AddRoundTripper(&bearerAuthRoundTripper{token: cfg.Token})

	return client, nil
}

// ResolveByID resolves a user ID to email and display name
func (c *Client) ResolveByID(ctx context.Context, userID string) (*model.DirectoryUser, error) {
	if userID == "" {
		return nil, errors.NewValidation("user ID cannot be empty")
	}
	endpoint := fmt.Sprintf("%s/users/%s", c.config.BaseURL, url.PathEscape(userID))
	return c.fetchUser(ctx, endpoint)
}

// ResolveByEmail resolves an email address to user ID and display name
func (c *Client) ResolveByEmail(ctx context.Context, email string) (*model.DirectoryUser, error) {
	if email == "" {
		return nil, errors.NewValidation("email cannot be empty")
	}
	endpoint := fmt.Sprintf("%s/users?email=%s", c.config.BaseURL, url.QueryEscape(email))
	return c.fetchUser(ctx, endpoint)
}

func (c *Client) fetchUser(ctx context.Context, endpoint string) (*model.DirectoryUser, error) {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, mapHTTPError(ctx, err)
	}

	user := &model.DirectoryUser{}
	if err := json.Unmarshal(resp.Body, user); err != nil {
		return nil, errors.NewUnexpected("failed to decode user directory response", err)
	}

	return user, nil
}

// interface guard
var _ port.UserDirectory = (*Client)(nil)
