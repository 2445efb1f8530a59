package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tone-preview/internal/backend"
	"tone-preview/internal/domain"
)

var ErrEmptyPatch = errors.New("no style fields to update")

// StyleService arma previews a partir de las preferencias guardadas en el backend.
type StyleService struct {
	logger    *zap.Logger
	backend   backend.PreferencesClient
	cache     PreferencesCache
	cacheTTL  time.Duration
	generator TonePreviewGenerator
}

// NewStyleService crea el servicio. cache nil usa un cache en memoria.
func NewStyleService(logger *zap.Logger, client backend.PreferencesClient, cache PreferencesCache, cacheTTL time.Duration) *StyleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewMemoryPreferencesCache()
	}
	return &StyleService{
		logger:    logger,
		backend:   client,
		cache:     cache,
		cacheTTL:  cacheTTL,
		generator: DefaultTonePreviewGenerator,
	}
}

// Preview genera el preview para valores enviados directamente por el cliente.
func (s *StyleService) Preview(prefs domain.StylePreferences) domain.StylePreview {
	prefs = ClampPreferences(prefs)
	return domain.StylePreview{
		Preferences: prefs,
		Preview:     s.generator.PreviewFor(prefs),
	}
}

// StoredPreview lee las preferencias del usuario en el backend y genera su preview.
// Si el backend no responde se usa la última copia cacheada; un token rechazado nunca cae al cache.
func (s *StyleService) StoredPreview(ctx context.Context, userID, token string) (domain.StylePreview, error) {
	stored, err := s.backend.GetStylePreferences(ctx, token)
	if err != nil {
		if errors.Is(err, backend.ErrBackendUnavailable) {
			prefs, ok, cacheErr := s.cache.Get(userID)
			if cacheErr != nil {
				s.logger.Warn("preferences cache get failed", zap.String("user_id", userID), zap.Error(cacheErr))
			} else if ok {
				s.logger.Warn("backend unavailable, serving cached preferences", zap.String("user_id", userID), zap.Error(err))
				return s.Preview(prefs), nil
			}
		}
		return domain.StylePreview{}, fmt.Errorf("get style preferences: %w", err)
	}
	prefs := ClampPreferences(stored.WithDefaults())
	if err := s.cache.Set(userID, prefs, s.cacheTTL); err != nil {
		s.logger.Warn("preferences cache set failed", zap.String("user_id", userID), zap.Error(err))
	}
	return s.Preview(prefs), nil
}

// UpdateAndPreview guarda en el backend los campos presentes y devuelve el preview de lo guardado.
func (s *StyleService) UpdateAndPreview(ctx context.Context, userID, token string, patch domain.StylePreferencesPatch) (domain.StylePreview, error) {
	if patch.IsEmpty() {
		return domain.StylePreview{}, ErrEmptyPatch
	}
	patch = clampPatch(patch)

	stored, err := s.backend.UpdateStylePreferences(ctx, token, patch)
	if err != nil {
		return domain.StylePreview{}, fmt.Errorf("update style preferences: %w", err)
	}
	prefs := ClampPreferences(stored.WithDefaults())
	if err := s.cache.Set(userID, prefs, s.cacheTTL); err != nil {
		s.logger.Warn("preferences cache set failed", zap.String("user_id", userID), zap.Error(err))
		if err := s.cache.Invalidate(userID); err != nil {
			s.logger.Warn("preferences cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return s.Preview(prefs), nil
}

func clampPatch(patch domain.StylePreferencesPatch) domain.StylePreferencesPatch {
	clamp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		c := ClampUnit(*v)
		return &c
	}
	return domain.StylePreferencesPatch{
		Flirtiness:   clamp(patch.Flirtiness),
		Friendliness: clamp(patch.Friendliness),
		Formality:    clamp(patch.Formality),
	}
}
