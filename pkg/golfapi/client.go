// Package golfapi is a typed client for the golf game server.
package golfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/codes"

	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/internal/metrics"
	"github.com/harun/clawgolf/internal/tracing"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the server root. A trailing slash is trimmed.
	BaseURL string

	// AgentID and APIKey authenticate every call except Register. They
	// can be set later with SetCredentials.
	AgentID string
	APIKey  string

	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client

	// Now defaults to time.Now and drives token expiry.
	Now func() time.Time

	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Client talks to the game server. It is not safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	agentID    string
	apiKey     string
	now        func() time.Time
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	tokens     *TokenCache
}

// NewClient creates a client from the given configuration.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		now:        now,
		logger:     logger.With().Str("component", "golfapi").Logger(),
		metrics:    cfg.Metrics,
	}
	c.SetCredentials(cfg.AgentID, cfg.APIKey)
	return c
}

// SetCredentials replaces the agent credentials and drops any cached token.
func (c *Client) SetCredentials(agentID, apiKey string) {
	c.agentID = agentID
	c.apiKey = apiKey
	c.tokens = NewTokenCache(c.issueToken, c.now, c.metrics)
}

// BaseURL returns the server root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AgentID returns the configured agent id.
func (c *Client) AgentID() string {
	return c.agentID
}

// Register creates a new agent. It needs no credentials.
func (c *Client) Register(ctx context.Context, registrationKey, name string) (*Registration, error) {
	var out Registration
	err := c.send(ctx, request{
		method:   http.MethodPost,
		path:     "/api/agents/register",
		endpoint: "register",
		headers:  map[string]string{"x-registration-key": registrationKey},
		body:     registerRequest{RegistrationKey: registrationKey, Name: name},
	}, &out)
	if err != nil {
		return nil, err
	}
	c.metrics.Registered()
	return &out, nil
}

// ListCourses returns the full course catalogue.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out coursesEnvelope
	if err := c.authorized(ctx, request{
		method:   http.MethodGet,
		path:     "/api/courses",
		endpoint: "courses",
	}, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// StartRound creates a round. yardsPerCell is omitted when zero.
func (c *Client) StartRound(ctx context.Context, courseID, teeColor string, yardsPerCell int) (*RoundView, error) {
	var out roundEnvelope
	if err := c.authorized(ctx, request{
		method:   http.MethodPost,
		path:     coursePath(courseID, "rounds"),
		endpoint: "rounds",
		body:     startRoundRequest{AgentID: c.agentID, TeeColor: teeColor, YardsPerCell: yardsPerCell},
	}, &out); err != nil {
		return nil, err
	}
	return &out.Round, nil
}

// ResumeRound returns the current state of an existing round.
func (c *Client) ResumeRound(ctx context.Context, courseID, roundID string) (*RoundView, error) {
	var out roundEnvelope
	if err := c.authorized(ctx, request{
		method:   http.MethodPost,
		path:     roundPath(courseID, roundID, "resume"),
		endpoint: "resume",
	}, &out); err != nil {
		return nil, err
	}
	return &out.Round, nil
}

// HoleInfo returns the current hole context. Zero yardsPerCell and empty
// mapFormat are left out of the query.
func (c *Client) HoleInfo(ctx context.Context, courseID, roundID string, yardsPerCell int, mapFormat string) (*HoleInfo, error) {
	query := url.Values{}
	if yardsPerCell > 0 {
		query.Set("yardsPerCell", strconv.Itoa(yardsPerCell))
	}
	if mapFormat != "" {
		query.Set("mapFormat", mapFormat)
	}

	var out HoleInfo
	if err := c.authorized(ctx, request{
		method:   http.MethodGet,
		path:     roundPath(courseID, roundID, "hole-info"),
		endpoint: "hole-info",
		query:    query,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitShot plays one shot.
func (c *Client) SubmitShot(ctx context.Context, courseID, roundID string, decision ShotDecision) (*ShotResponse, error) {
	var out ShotResponse
	if err := c.authorized(ctx, request{
		method:   http.MethodPost,
		path:     roundPath(courseID, roundID, "shot"),
		endpoint: "shot",
		body:     decision,
	}, &out); err != nil {
		return nil, err
	}
	c.metrics.ShotSubmitted(decision.Club)
	return &out, nil
}

// HoleImage returns a URL of a rendered image of the current hole.
func (c *Client) HoleImage(ctx context.Context, courseID, roundID string) (string, error) {
	var out holeImageResponse
	if err := c.authorized(ctx, request{
		method:   http.MethodGet,
		path:     roundPath(courseID, roundID, "hole-image"),
		endpoint: "hole-image",
	}, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

func (c *Client) issueToken(ctx context.Context) (SessionToken, error) {
	var out SessionToken
	err := c.send(ctx, request{
		method:   http.MethodPost,
		path:     "/api/auth/agent-token",
		endpoint: "agent-token",
		body: map[string]string{
			"agentId": c.agentID,
			"apiKey":  c.apiKey,
		},
	}, &out)
	return out, err
}

type request struct {
	method   string
	path     string
	endpoint string
	query    url.Values
	headers  map[string]string
	body     any
	token    string
}

func (c *Client) authorized(ctx context.Context, req request, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.token = token
	return c.send(ctx, req, out)
}

// send performs one request and decodes a 2xx JSON body into out. Non-2xx
// responses become classified golferr errors.
func (c *Client) send(ctx context.Context, req request, out any) (err error) {
	ctx, requestID := tracing.NewRequestContext(ctx)
	ctx, span := tracing.StartSpan(ctx, req.method+" "+req.endpoint, tracing.HTTPAttributes(req.method, req.path)...)
	defer span.End()

	logger := tracing.LoggerFromContext(ctx, c.logger)
	start := c.now()
	status := 0
	defer func() {
		elapsed := c.now().Sub(start)
		c.metrics.ObserveRequest(req.endpoint, status, elapsed)
		span.SetAttributes(tracing.HTTPStatus(status))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		logger.Debug().
			Str("method", req.method).
			Str("path", req.path).
			Int("status", status).
			Dur("duration", elapsed).
			Err(err).
			Msg("game api request")
	}()

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return golferr.Transport(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return golferr.Transport(err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return golferr.Transport(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return golferr.FromResponse(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return golferr.Transport(fmt.Errorf("failed to decode %s response: %w", req.endpoint, err))
	}
	return nil
}

func coursePath(courseID, leaf string) string {
	return "/api/course/" + url.PathEscape(courseID) + "/" + leaf
}

func roundPath(courseID, roundID, leaf string) string {
	return coursePath(courseID, "rounds/"+url.PathEscape(roundID)+"/"+leaf)
}
