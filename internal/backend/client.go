package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tone-preview/internal/domain"
)

const stylePreferencesPath = "/api/users/style-preferences"

var (
	ErrBackendUnauthorized = errors.New("backend rejected token")
	ErrBackendUnavailable  = errors.New("backend unavailable")
)

// PreferencesClient define el acceso a las preferencias de estilo guardadas en el backend.
type PreferencesClient interface {
	GetStylePreferences(ctx context.Context, token string) (StoredPreferences, error)
	UpdateStylePreferences(ctx context.Context, token string, patch domain.StylePreferencesPatch) (StoredPreferences, error)
}

// StoredPreferences es la respuesta del backend. Los campos ausentes quedan en nil.
type StoredPreferences struct {
	Flirtiness   *float64 `json:"flirtiness"`
	Friendliness *float64 `json:"friendliness"`
	Formality    *float64 `json:"formality"`
}

// WithDefaults completa los campos ausentes con los valores por defecto del dashboard.
func (p StoredPreferences) WithDefaults() domain.StylePreferences {
	prefs := domain.DefaultStylePreferences()
	if p.Flirtiness != nil {
		prefs.Flirtiness = *p.Flirtiness
	}
	if p.Friendliness != nil {
		prefs.Friendliness = *p.Friendliness
	}
	if p.Formality != nil {
		prefs.Formality = *p.Formality
	}
	return prefs
}

// HTTPClient implementa PreferencesClient contra la API REST del backend.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a la raíz del backend (sin /api).
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) GetStylePreferences(ctx context.Context, token string) (StoredPreferences, error) {
	var out StoredPreferences
	if err := c.do(ctx, http.MethodGet, stylePreferencesPath, token, nil, &out); err != nil {
		return StoredPreferences{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateStylePreferences(ctx context.Context, token string, patch domain.StylePreferencesPatch) (StoredPreferences, error) {
	var out StoredPreferences
	if err := c.do(ctx, http.MethodPut, stylePreferencesPath, token, patch, &out); err != nil {
		return StoredPreferences{}, err
	}
	return out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity {
		return ErrBackendUnauthorized
	}
	if resp.StatusCode >= 400 {
		c.logger.Warn("backend error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return fmt.Errorf("%w: status=%d", ErrBackendUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
