// Package oembed resolves media URLs into provider-supplied embed markup
// through registered oEmbed endpoints.
package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"golang.org/x/time/rate"
)

// ResolutionError carries the user-visible failure message. The rendering
// core surfaces it verbatim in place of the frame, so the message is the
// page content — keep it plain text.
type ResolutionError struct {
	Message string
}

func (e *ResolutionError) Error() string {
	return e.Message
}

type endpoint struct {
	hosts []string
	url   string
}

// Client fetches oEmbed documents over HTTP, rate-limited and cached.
type Client struct {
	http         *http.Client
	limiter      *rate.Limiter
	cache        *manager.Manager
	logger       *logging.ChanneledLogger
	maxBodyBytes int64

	mu        sync.RWMutex
	endpoints []endpoint
}

// NewClient creates an oEmbed client.
func NewClient(cache *manager.Manager, timeout time.Duration, perSecond, burst int, maxBodyBytes int64, logger *logging.ChanneledLogger) *Client {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(perSecond), burst),
		cache:        cache,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// RegisterEndpoint maps a set of hosts onto an oEmbed endpoint URL.
func (c *Client) RegisterEndpoint(hosts []string, endpointURL string) {
	if endpointURL == "" || len(hosts) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoints = append(c.endpoints, endpoint{hosts: hosts, url: endpointURL})
}

// ResetEndpoints drops all registered endpoints, e.g. before re-registering
// after a registry change.
func (c *Client) ResetEndpoints() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoints = nil
}

// Resolve looks up embed markup for a media URL. Results are cached; failures
// are reported as *ResolutionError with a human-readable message.
func (c *Client) Resolve(mediaURL string) (string, error) {
	if html, hit := c.cache.GetOEmbed(mediaURL); hit {
		c.logger.LogCacheOperation("oembed:resolve", mediaURL, true, 0)
		return html, nil
	}

	start := time.Now()
	html, err := c.fetch(mediaURL)
	if err != nil {
		c.logger.OEmbed().Warn("oEmbed resolution failed",
			"url", mediaURL, "error", err.Error(), "duration", time.Since(start))
		return "", err
	}

	c.cache.SetOEmbed(mediaURL, html)
	c.logger.OEmbed().Info("oEmbed resolved",
		"url", mediaURL, "duration", time.Since(start))
	return html, nil
}

func (c *Client) fetch(mediaURL string) (string, error) {
	endpointURL, err := c.endpointFor(mediaURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.http.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", &ResolutionError{Message: "Embed lookup was throttled, please retry."}
	}

	requestURL := fmt.Sprintf("%s?format=json&url=%s", endpointURL, url.QueryEscape(mediaURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", &ResolutionError{Message: "Could not build embed lookup request."}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ResolutionError{Message: fmt.Sprintf("Embed lookup failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ResolutionError{
			Message: fmt.Sprintf("Embed provider returned HTTP %d for %s", resp.StatusCode, mediaURL),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return "", &ResolutionError{Message: "Could not read embed provider response."}
	}

	var doc struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", &ResolutionError{Message: "Embed provider returned an unreadable response."}
	}
	if doc.HTML == "" {
		return "", &ResolutionError{Message: fmt.Sprintf("Embed provider returned no markup for %s", mediaURL)}
	}

	return doc.HTML, nil
}

func (c *Client) endpointFor(mediaURL string) (string, error) {
	parsed, err := url.Parse(mediaURL)
	if err != nil || parsed.Host == "" {
		return "", &ResolutionError{Message: fmt.Sprintf("Not a resolvable media URL: %s", mediaURL)}
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ep := range c.endpoints {
		for _, h := range ep.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return ep.url, nil
			}
		}
	}
	return "", &ResolutionError{Message: fmt.Sprintf("No embed provider registered for %s", host)}
}

// RegistrationCount reports the number of registered endpoints.
func (c *Client) RegistrationCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.endpoints)
}
