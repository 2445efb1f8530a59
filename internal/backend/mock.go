package backend

import (
	"context"

	"tone-preview/internal/domain"
)

// MockClient permite tests sin llamar al backend real.
type MockClient struct {
	Stored    StoredPreferences
	Err       error
	GetCalls  int
	LastToken string
	LastPatch domain.StylePreferencesPatch
	UpdateErr error
}

func (m *MockClient) GetStylePreferences(_ context.Context, token string) (StoredPreferences, error) {
	m.GetCalls++
	m.LastToken = token
	return m.Stored, m.Err
}

func (m *MockClient) UpdateStylePreferences(_ context.Context, token string, patch domain.StylePreferencesPatch) (StoredPreferences, error) {
	m.LastToken = token
	m.LastPatch = patch
	if m.UpdateErr != nil {
		return StoredPreferences{}, m.UpdateErr
	}
	if patch.Flirtiness != nil {
		m.Stored.Flirtiness = patch.Flirtiness
	}
	if patch.Friendliness != nil {
		m.Stored.Friendliness = patch.Friendliness
	}
	if patch.Formality != nil {
		m.Stored.Formality = patch.Formality
	}
	return m.Stored, nil
}
