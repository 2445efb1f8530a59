package service

import (
	"errors"
	"testing"

	"tone-preview/internal/domain"
)

func TestGenerateSimplePreview_Rules(t *testing.T) {
	g := TonePreviewGenerator{}
	cases := []struct {
		name         string
		flirtiness   int
		friendliness int
		formality    int
		wantRule     string
		wantReply    string
	}{
		{"romantic", 8, 7, 3, "romantic", "Aww you're so sweet! 💕 I love knowing you enjoy my content... stay tuned for more soon! 😘"},
		{"romantic boundary", 7, 6, 0, "romantic", "Aww you're so sweet! 💕 I love knowing you enjoy my content... stay tuned for more soon! 😘"},
		{"warm when friendliness too low for romantic", 9, 5, 9, "warm", "Thanks so much! 😊 I'm really happy you're enjoying my content!"},
		{"warm boundary", 5, 5, 0, "warm", "Thanks so much! 😊 I'm really happy you're enjoying my content!"},
		{"formal", 2, 2, 8, "formal", "Thank you for your support! I appreciate your feedback on my content."},
		{"formal boundary", 4, 10, 7, "formal", "Thank you for your support! I appreciate your feedback on my content."},
		{"casual", 2, 2, 6, "casual", "Thanks! Glad you're enjoying the content."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.GenerateSimplePreview(tc.flirtiness, tc.friendliness, tc.formality); got != tc.wantReply {
				t.Fatalf("expected %q, got %q", tc.wantReply, got)
			}
			style := domain.SliderStyle{Flirtiness: tc.flirtiness, Friendliness: tc.friendliness, Formality: tc.formality}
			if got := g.SliderRuleName(style); got != tc.wantRule {
				t.Fatalf("expected rule %q, got %q", tc.wantRule, got)
			}
		})
	}
}

func TestGenerateSimplePreview_ClampsSliders(t *testing.T) {
	g := TonePreviewGenerator{}
	if got, want := g.GenerateSimplePreview(50, 50, 50), g.GenerateSimplePreview(10, 10, 10); got != want {
		t.Fatalf("expected clamped reply %q, got %q", want, got)
	}
	if got := g.GenerateSimplePreview(-5, -5, -5); got != "Thanks! Glad you're enjoying the content." {
		t.Fatalf("expected casual reply for negative sliders, got %q", got)
	}
}

func TestPresets_OrderAndPreview(t *testing.T) {
	presets := Presets()
	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(presets))
	}
	wantRules := []string{"formal", "warm", "romantic"}
	for i, name := range []string{"professional", "casual", "flirty"} {
		if presets[i].Name != name {
			t.Fatalf("expected preset %d to be %q, got %q", i, name, presets[i].Name)
		}
		if got := DefaultTonePreviewGenerator.SliderRuleName(presets[i].Style); got != wantRules[i] {
			t.Fatalf("preset %q: expected rule %q, got %q", name, wantRules[i], got)
		}
	}

	presets[0].Name = "mutated"
	if Presets()[0].Name != "professional" {
		t.Fatalf("presets mutated through returned slice")
	}
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("  Flirty ")
	if err != nil {
		t.Fatalf("lookup flirty: %v", err)
	}
	if p.Style != (domain.SliderStyle{Flirtiness: 8, Friendliness: 7, Formality: 3}) {
		t.Fatalf("unexpected flirty style: %+v", p.Style)
	}

	if _, err := LookupPreset("spicy"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}
