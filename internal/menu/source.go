// Package menu retrieves the upstream kiosk menu and normalizes it into
// categories and products, degrading to cached or fallback data when
// upstream is unavailable.
package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"kiosk/internal/model"

	"github.com/rs/zerolog"
)

// Source retrieves the raw upstream menu.
type Source interface {
	// Fetch returns the menu groups of the upstream envelope.
	Fetch(ctx context.Context) ([]model.RawCategory, error)
}

// DefaultLastUpdate asks upstream for the full menu.
const DefaultLastUpdate = "2000-01-01"

// HTTPSourceConfig holds configuration for the remote menu endpoint.
type HTTPSourceConfig struct {
	Endpoint   string
	Timeout    time.Duration
	Headers    map[string]string
	LastUpdate string
}

// httpSource implements Source against a remote JSON endpoint.
type httpSource struct {
	client *http.Client
	cfg    HTTPSourceConfig
	logger zerolog.Logger
}

// NewHTTPSource creates a Source that POSTs to the menu endpoint.
func NewHTTPSource(cfg HTTPSourceConfig, logger zerolog.Logger) Source {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.LastUpdate == "" {
		cfg.LastUpdate = DefaultLastUpdate
	}

	return &httpSource{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
			},
		},
		logger: logger.With().Str("component", "menu-http-source").Logger(),
	}
}

// Fetch performs a single request. Retries are the caller's concern.
func (s *httpSource) Fetch(ctx context.Context) ([]model.RawCategory, error) {
	body, err := json.Marshal(model.MenuRequest{CurrentMenuLastUpdateDateTime: s.cfg.LastUpdate})
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrMenuFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.cfg.Headers {
		req.Header.Set(k, v)
	}

	s.logger.Debug().Str("endpoint", s.cfg.Endpoint).Msg("requesting menu")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint", s.cfg.Endpoint).Msg("menu request failed")
		return nil, fmt.Errorf("%w: %v", model.ErrMenuFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		s.logger.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", s.cfg.Endpoint).
			Msg("menu endpoint returned non-200 status")
		return nil, fmt.Errorf("%w: status %d", model.ErrMenuFetch, resp.StatusCode)
	}

	categories, err := DecodeEnvelope(resp.Body)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint", s.cfg.Endpoint).Msg("menu payload rejected")
		return nil, err
	}

	s.logger.Info().
		Int("categories", len(categories)).
		Str("endpoint", s.cfg.Endpoint).
		Msg("menu received")

	return categories, nil
}

// DecodeEnvelope reads a { "d": { "Menu": [...] } } document. A missing or
// non-array d.Menu yields ErrMalformedPayload.
func DecodeEnvelope(r io.Reader) ([]model.RawCategory, error) {
	var envelope struct {
		D *struct {
			Menu json.RawMessage `json:"Menu"`
		} `json:"d"`
	}

	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}

	if envelope.D == nil {
		return nil, fmt.Errorf("%w: d is missing", model.ErrMalformedPayload)
	}

	raw := bytes.TrimSpace(envelope.D.Menu)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: d.Menu is not an array", model.ErrMalformedPayload)
	}

	var categories []model.RawCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}

	return categories, nil
}
