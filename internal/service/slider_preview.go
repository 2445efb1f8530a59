package service

import (
	"errors"
	"strings"

	"tone-preview/internal/domain"
)

const sliderMax = 10

var ErrUnknownPreset = errors.New("unknown style preset")

type sliderRule struct {
	name    string
	matches func(s domain.SliderStyle) bool
	reply   string
}

// Tabla de la demo de sliders 0-10; gana la primera regla que coincide.
var sliderRules = []sliderRule{
	{
		name:    "romantic",
		matches: func(s domain.SliderStyle) bool { return s.Flirtiness >= 7 && s.Friendliness >= 6 },
		reply:   "Aww you're so sweet! 💕 I love knowing you enjoy my content... stay tuned for more soon! 😘",
	},
	{
		name:    "warm",
		matches: func(s domain.SliderStyle) bool { return s.Flirtiness >= 5 && s.Friendliness >= 5 },
		reply:   "Thanks so much! 😊 I'm really happy you're enjoying my content!",
	},
	{
		name:    "formal",
		matches: func(s domain.SliderStyle) bool { return s.Formality >= 7 },
		reply:   "Thank you for your support! I appreciate your feedback on my content.",
	},
	{
		name:    "casual",
		matches: func(domain.SliderStyle) bool { return true },
		reply:   "Thanks! Glad you're enjoying the content.",
	},
}

var stylePresets = []domain.StylePreset{
	{Name: "professional", Style: domain.SliderStyle{Flirtiness: 3, Friendliness: 7, Formality: 8}},
	{Name: "casual", Style: domain.SliderStyle{Flirtiness: 5, Friendliness: 7, Formality: 4}},
	{Name: "flirty", Style: domain.SliderStyle{Flirtiness: 8, Friendliness: 7, Formality: 3}},
}

// GenerateSimplePreview aplica la tabla de reglas de los sliders enteros 0-10.
// Es independiente de GeneratePreview: otra escala y otras frases.
func (g TonePreviewGenerator) GenerateSimplePreview(flirtiness, friendliness, formality int) string {
	_, reply := g.matchSliderRule(domain.SliderStyle{
		Flirtiness:   flirtiness,
		Friendliness: friendliness,
		Formality:    formality,
	})
	return reply
}

// SliderRuleName devuelve el nombre de la regla que aplica (romantic, warm, formal, casual).
func (g TonePreviewGenerator) SliderRuleName(style domain.SliderStyle) string {
	name, _ := g.matchSliderRule(style)
	return name
}

func (TonePreviewGenerator) matchSliderRule(style domain.SliderStyle) (string, string) {
	style = ClampSlider(style)
	for _, rule := range sliderRules {
		if rule.matches(style) {
			return rule.name, rule.reply
		}
	}
	last := sliderRules[len(sliderRules)-1]
	return last.name, last.reply
}

// ClampSlider acota cada slider a [0, 10].
func ClampSlider(style domain.SliderStyle) domain.SliderStyle {
	return domain.SliderStyle{
		Flirtiness:   clampInt(style.Flirtiness, 0, sliderMax),
		Friendliness: clampInt(style.Friendliness, 0, sliderMax),
		Formality:    clampInt(style.Formality, 0, sliderMax),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Presets devuelve los presets de la demo en orden fijo.
func Presets() []domain.StylePreset {
	out := make([]domain.StylePreset, len(stylePresets))
	copy(out, stylePresets)
	return out
}

// LookupPreset busca un preset por nombre, sin distinguir mayúsculas.
func LookupPreset(name string) (domain.StylePreset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range stylePresets {
		if p.Name == key {
			return p, nil
		}
	}
	return domain.StylePreset{}, ErrUnknownPreset
}
