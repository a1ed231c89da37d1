// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ManuGH/vendorsim/internal/fakedata"
	"github.com/ManuGH/vendorsim/internal/log"
	"github.com/ManuGH/vendorsim/internal/metrics"
	"github.com/rs/zerolog"
)

const maxErrorBody = 512

// Config holds the remote endpoints used by Client.
type Config struct {
	RegisterURL string
	LoginURL    string
}

// Client is the HTTP Provisioner.
type Client struct {
	cfg    Config
	http   *http.Client
	gen    fakedata.Generator
	logger zerolog.Logger
}

var _ Provisioner = (*Client)(nil)

// NewClient builds a Client. httpClient should come from httpx.NewClient.
func NewClient(cfg Config, httpClient *http.Client, gen fakedata.Generator) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		gen:    gen,
		logger: log.WithComponent("identity"),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobile_no"`
}

type loginRequest struct {
	MobileNo string `json:"mobile_no"`
}

type loginResponse struct {
	Access string `json:"access"`
}

// Register submits a freshly generated identity. Only HTTP 201 counts as success.
func (c *Client) Register(ctx context.Context) (phone PhoneNumber, err error) {
	const op = "register"
	start := time.Now()
	defer func() { metrics.RecordProvisionCall(op, Outcome(err), time.Since(start)) }()

	id := c.gen.NewIdentity()
	res, err := c.post(ctx, op, c.cfg.RegisterURL, registerRequest{
		Name:     id.Name,
		Email:    id.Email,
		MobileNo: id.PhoneNumber,
	})
	if err != nil {
		return "", err
	}
	defer drain(res.Body)

	if res.StatusCode != http.StatusCreated {
		return "", &Error{Sentinel: ErrRejected, Operation: op, Status: res.StatusCode, Body: readBody(res.Body)}
	}

	logger := log.WithContext(ctx, c.logger)
	logger.Info().
		Str(log.FieldEvent, "identity.registered").
		Str(log.FieldPhone, id.PhoneNumber).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("vendor registered")
	return PhoneNumber(id.PhoneNumber), nil
}

// Login exchanges the phone number for a session credential. Only HTTP 200 with a
// non-empty "access" field counts as success.
func (c *Client) Login(ctx context.Context, phone PhoneNumber) (cred Credential, err error) {
	const op = "login"
	start := time.Now()
	defer func() { metrics.RecordProvisionCall(op, Outcome(err), time.Since(start)) }()

	res, err := c.post(ctx, op, c.cfg.LoginURL, loginRequest{MobileNo: string(phone)})
	if err != nil {
		return "", err
	}
	defer drain(res.Body)

	if res.StatusCode != http.StatusOK {
		return "", &Error{Sentinel: ErrRejected, Operation: op, Status: res.StatusCode, Body: readBody(res.Body)}
	}

	var body loginResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", &Error{Sentinel: ErrBadResponse, Operation: op, Status: res.StatusCode, Err: err}
	}
	if strings.TrimSpace(body.Access) == "" {
		return "", &Error{Sentinel: ErrMissingToken, Operation: op, Status: res.StatusCode}
	}

	logger := log.WithContext(ctx, c.logger)
	logger.Info().
		Str(log.FieldEvent, "identity.logged_in").
		Dur(log.FieldDuration, time.Since(start)).
		Msg("login successful, token received")
	return Credential(body.Access), nil
}

func (c *Client) post(ctx context.Context, op, url string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Sentinel: ErrBadResponse, Operation: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Sentinel: ErrUnavailable, Operation: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, op, err)
	}
	return res, nil
}

func classifyTransportError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Sentinel: ErrTimeout, Operation: op, Err: err}
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return &Error{Sentinel: ErrTimeout, Operation: op, Err: err}
	}
	return &Error{Sentinel: ErrUnavailable, Operation: op, Err: err}
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(b))
}

func drain(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	_ = rc.Close()
}
