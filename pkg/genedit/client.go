package genedit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jverel/darkroom/pkg/cache"
	"github.com/jverel/darkroom/pkg/errors"
	"github.com/jverel/darkroom/pkg/httputil"
	"github.com/jverel/darkroom/pkg/imgio"
	"github.com/jverel/darkroom/pkg/observability"
	"github.com/jverel/darkroom/pkg/studio"
)

const defaultTimeout = 120 * time.Second

// Config configures the edit service client.
type Config struct {
	BaseURL string        // Service endpoint, e.g. "https://edit.example.com"
	APIKey  string        // Bearer token; empty for unauthenticated services
	Model   string        // Model identifier passed through to the service
	Timeout time.Duration // Per-request timeout; defaults to 2 minutes

	// Cache stores edit results keyed by instruction and input images.
	// Nil disables caching.
	Cache cache.Cache
	// Keyer generates cache keys. Nil uses the default keyer.
	Keyer cache.Keyer
}

// Client talks to the generative edit service.
//
// An edit request carries an instruction and the marked input images;
// the service returns a single edited image. Identical requests are
// served from the cache when one is configured.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
	cache   cache.Cache
	keyer   cache.Keyer
}

// NewClient creates an edit service client.
func NewClient(cfg Config) (*Client, error) {
	if err := errors.ValidateURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := cfg.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	k := cfg.Keyer
	if k == nil {
		k = cache.NewDefaultKeyer()
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		cache:   c,
		keyer:   k,
	}, nil
}

// wire types

type editRequest struct {
	Instruction string      `json:"instruction"`
	Model       string      `json:"model,omitempty"`
	Images      []editImage `json:"images"`
}

type editImage struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Data string `json:"data"` // base64-encoded PNG
}

type editResponse struct {
	Image string `json:"image"` // base64-encoded PNG
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Edit sends an instruction and the given input assets to the edit
// service and returns the edited image.
//
// Results are cached by instruction, input image content, and model:
// repeating an edit with the same inputs returns the cached result
// without a service call. Transient failures (network errors, 5xx
// responses) are retried with backoff; service rejections are returned
// with the service's own message so the user sees exactly what the
// service said.
func (c *Client) Edit(ctx context.Context, instruction string, inputs []studio.Asset) (image.Image, error) {
	if instruction == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "edit instruction must not be empty")
	}
	if len(inputs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "edit requires at least one input image")
	}

	encoded := make([]editImage, len(inputs))
	hashes := make([]string, len(inputs))
	for i, a := range inputs {
		png, err := imgio.EncodePNG(a.Image)
		if err != nil {
			return nil, err
		}
		encoded[i] = editImage{
			Name: a.Name,
			MIME: "image/png",
			Data: base64.StdEncoding.EncodeToString(png),
		}
		hashes[i] = cache.Hash(png)
	}

	key := c.keyer.EditKey(instruction, hashes, cache.EditKeyOpts{Model: c.model})
	if data, ok, _ := c.cache.Get(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, "edit")
		d, err := imgio.DecodeReader(bytes.NewReader(data))
		if err == nil {
			return d.Image, nil
		}
		// Corrupt cache entry: drop it and fall through to the service.
		_ = c.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "edit")

	body, err := json.Marshal(editRequest{
		Instruction: instruction,
		Model:       c.model,
		Images:      encoded,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode edit request")
	}

	var result editResponse
	err = httputil.RetryWithBackoff(ctx, func() error {
		return c.post(ctx, body, &result)
	})
	if err != nil {
		return nil, err
	}

	png, err := base64.StdEncoding.DecodeString(result.Image)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeService, err, "decode service response image")
	}
	d, err := imgio.DecodeReader(bytes.NewReader(png))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeService, err, "decode service response image")
	}

	if err := c.cache.Set(ctx, key, png, 0); err == nil {
		observability.Cache().OnCacheSet(ctx, "edit", len(png))
	}
	return d.Image, nil
}

func (c *Client) post(ctx context.Context, body []byte, v any) error {
	endpoint := c.baseURL + "/v1/edits"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	host, path := requestTarget(endpoint)
	observability.HTTP().OnRequest(ctx, http.MethodPost, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, host, path, err)
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "edit service request")}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// checkStatus maps HTTP failures to the error taxonomy. Service
// rejections carry the service's message through verbatim.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrCodeServiceUnauthorized, "%s", serviceMessage(resp, "authentication failed"))
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &errors.RateLimitedError{RetryAfter: retryAfter, Message: serviceMessage(resp, "rate limited")}
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "edit service returned status %d", resp.StatusCode),
		}
	default:
		return errors.New(errors.ErrCodeService, "%s", serviceMessage(resp, fmt.Sprintf("status %d", resp.StatusCode)))
	}
}

// serviceMessage extracts the service's error message, falling back
// when the body is not the expected JSON envelope.
func serviceMessage(resp *http.Response, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fallback
	}
	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil || er.Error.Message == "" {
		return fallback
	}
	return er.Error.Message
}

func requestTarget(endpoint string) (host, path string) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", endpoint
	}
	return u.Host, u.Path
}
