package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tone-preview/internal/backend"
	"tone-preview/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

type failingPreferencesCache struct {
	err error
}

func (f failingPreferencesCache) Get(string) (domain.StylePreferences, bool, error) {
	return domain.StylePreferences{}, false, f.err
}

func (f failingPreferencesCache) Set(string, domain.StylePreferences, time.Duration) error {
	return f.err
}

func (f failingPreferencesCache) Invalidate(string) error {
	return f.err
}

func TestStyleService_StoredPreviewAlwaysReadsBackend(t *testing.T) {
	client := &backend.MockClient{Stored: backend.StoredPreferences{
		Flirtiness:   floatPtr(0.5),
		Friendliness: floatPtr(0.5),
		Formality:    floatPtr(0.5),
	}}
	svc := NewStyleService(nil, client, nil, time.Minute)

	got, err := svc.StoredPreview(context.Background(), "u1", "tok")
	if err != nil {
		t.Fatalf("stored preview: %v", err)
	}
	want := "Thanks for your message! I really appreciate your support. 💕 😊 💗"
	if got.Preview != want {
		t.Fatalf("expected %q, got %q", want, got.Preview)
	}
	if client.LastToken != "tok" {
		t.Fatalf("expected token to be forwarded, got %q", client.LastToken)
	}

	// el dashboard guarda directo en el backend; el siguiente preview debe verlo
	client.Stored.Formality = floatPtr(0.9)
	got, err = svc.StoredPreview(context.Background(), "u1", "tok")
	if err != nil {
		t.Fatalf("stored preview: %v", err)
	}
	want = "Thank you for your message. I sincerely appreciate your support. 💕 😊 💗"
	if got.Preview != want {
		t.Fatalf("expected fresh preview %q, got %q", want, got.Preview)
	}
	if client.GetCalls != 2 {
		t.Fatalf("expected two backend calls, got %d", client.GetCalls)
	}
}

func TestStyleService_StoredPreviewFallsBackToCacheWhenBackendDown(t *testing.T) {
	client := &backend.MockClient{Stored: backend.StoredPreferences{
		Flirtiness:   floatPtr(0.5),
		Friendliness: floatPtr(0.5),
		Formality:    floatPtr(0.5),
	}}
	svc := NewStyleService(nil, client, nil, time.Minute)

	first, err := svc.StoredPreview(context.Background(), "u1", "tok")
	if err != nil {
		t.Fatalf("stored preview: %v", err)
	}

	client.Err = fmt.Errorf("do request: %w", backend.ErrBackendUnavailable)
	got, err := svc.StoredPreview(context.Background(), "u1", "tok")
	if err != nil {
		t.Fatalf("expected cached fallback, got %v", err)
	}
	if got != first {
		t.Fatalf("expected cached preview %+v, got %+v", first, got)
	}

	if _, err := svc.StoredPreview(context.Background(), "u2", "tok"); !errors.Is(err, backend.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable without cached copy, got %v", err)
	}
}

func TestStyleService_StoredPreviewRejectedTokenSkipsCache(t *testing.T) {
	client := &backend.MockClient{Stored: backend.StoredPreferences{
		Flirtiness:   floatPtr(0.1),
		Friendliness: floatPtr(0.1),
		Formality:    floatPtr(0.1),
	}}
	svc := NewStyleService(nil, client, nil, time.Minute)

	if _, err := svc.StoredPreview(context.Background(), "u1", "tok"); err != nil {
		t.Fatalf("stored preview: %v", err)
	}

	client.Err = backend.ErrBackendUnauthorized
	if _, err := svc.StoredPreview(context.Background(), "u1", "revoked"); !errors.Is(err, backend.ErrBackendUnauthorized) {
		t.Fatalf("expected ErrBackendUnauthorized, got %v", err)
	}
}

func TestStyleService_StoredPreviewDefaultsAndClamp(t *testing.T) {
	client := &backend.MockClient{Stored: backend.StoredPreferences{Flirtiness: floatPtr(3)}}
	svc := NewStyleService(nil, client, nil, 0)

	got, err := svc.StoredPreview(context.Background(), "u1", "tok")
	if err != nil {
		t.Fatalf("stored preview: %v", err)
	}
	want := domain.StylePreferences{Flirtiness: 1, Friendliness: domain.DefaultFriendliness, Formality: domain.DefaultFormality}
	if got.Preferences != want {
		t.Fatalf("expected %+v, got %+v", want, got.Preferences)
	}

	// ttl cero no cachea: sin backend no hay copia de respaldo
	client.Err = backend.ErrBackendUnavailable
	if _, err := svc.StoredPreview(context.Background(), "u1", "tok"); !errors.Is(err, backend.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable with zero ttl, got %v", err)
	}
}

func TestStyleService_StoredPreviewBackendError(t *testing.T) {
	client := &backend.MockClient{Err: backend.ErrBackendUnauthorized}
	svc := NewStyleService(nil, client, nil, time.Minute)

	if _, err := svc.StoredPreview(context.Background(), "u1", "tok"); !errors.Is(err, backend.ErrBackendUnauthorized) {
		t.Fatalf("expected ErrBackendUnauthorized, got %v", err)
	}
}

func TestStyleService_UpdateAndPreview(t *testing.T) {
	client := &backend.MockClient{Stored: backend.StoredPreferences{
		Flirtiness:   floatPtr(0.1),
		Friendliness: floatPtr(0.1),
		Formality:    floatPtr(0.1),
	}}
	cache := NewMemoryPreferencesCache()
	svc := NewStyleService(nil, client, cache, time.Minute)

	got, err := svc.UpdateAndPreview(context.Background(), "u1", "tok", domain.StylePreferencesPatch{Formality: floatPtr(1.4)})
	if err != nil {
		t.Fatalf("update and preview: %v", err)
	}
	if client.LastPatch.Formality == nil || *client.LastPatch.Formality != 1 {
		t.Fatalf("expected clamped formality to be forwarded, got %+v", client.LastPatch)
	}
	if client.LastPatch.Flirtiness != nil {
		t.Fatalf("did not expect flirtiness in patch")
	}
	if got.Preferences.Formality != 1 || got.Preferences.Flirtiness != 0.1 {
		t.Fatalf("unexpected stored preferences: %+v", got.Preferences)
	}

	cached, ok, _ := cache.Get("u1")
	if !ok || cached != got.Preferences {
		t.Fatalf("expected cache to hold updated preferences, got %+v ok=%v", cached, ok)
	}
}

func TestStyleService_UpdateRejectsEmptyPatch(t *testing.T) {
	svc := NewStyleService(nil, &backend.MockClient{}, nil, time.Minute)
	if _, err := svc.UpdateAndPreview(context.Background(), "u1", "tok", domain.StylePreferencesPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
}

func TestStyleService_PreviewClamps(t *testing.T) {
	svc := NewStyleService(nil, &backend.MockClient{}, nil, time.Minute)
	got := svc.Preview(domain.StylePreferences{Flirtiness: -1, Friendliness: 2, Formality: 0.8})
	want := domain.StylePreferences{Flirtiness: 0, Friendliness: 1, Formality: 0.8}
	if got.Preferences != want {
		t.Fatalf("expected %+v, got %+v", want, got.Preferences)
	}
	if got.Preview != "Thank you for your message. I sincerely appreciate your support. 👍 🙂 👋" {
		t.Fatalf("unexpected preview %q", got.Preview)
	}
}

func TestStyleService_UpdateLogsCacheFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := &backend.MockClient{Stored: backend.StoredPreferences{Formality: floatPtr(0.2)}}
	svc := NewStyleService(zap.New(core), client, failingPreferencesCache{err: errors.New("redis down")}, time.Minute)

	if _, err := svc.UpdateAndPreview(context.Background(), "u1", "tok", domain.StylePreferencesPatch{Formality: floatPtr(0.8)}); err != nil {
		t.Fatalf("update and preview: %v", err)
	}
	if logs.FilterMessage("preferences cache set failed").Len() != 1 {
		t.Fatalf("expected set failure to be logged, got %v", logs.All())
	}
	if logs.FilterMessage("preferences cache invalidate failed").Len() != 1 {
		t.Fatalf("expected invalidate failure to be logged, got %v", logs.All())
	}
}
