package main

import (
	"fmt"
	"io"
	"strings"

	"tone-preview/internal/domain"
	"tone-preview/internal/service"
)

type Scenario struct {
	Name         string
	Flirtiness   float64
	Friendliness float64
	Formality    float64
	WantPrefix   string
	WantEmojis   int
}

type SliderScenario struct {
	Name         string
	Flirtiness   int
	Friendliness int
	Formality    int
	WantRule     string
}

var presetRules = map[string]string{
	"professional": "formal",
	"casual":       "warm",
	"flirty":       "romantic",
}

func defaultScenarios() []Scenario {
	return []Scenario{
		{Name: "Todo en cero", WantPrefix: "Hey there! Thanks for your msg!", WantEmojis: 0},
		{Name: "Formal y coqueto", Flirtiness: 0.8, Friendliness: 0.8, Formality: 0.9, WantPrefix: "Thank you for your message.", WantEmojis: 5},
		{Name: "Neutral al medio", Flirtiness: 0.5, Friendliness: 0.5, Formality: 0.5, WantPrefix: "Thanks for your message!", WantEmojis: 3},
		{Name: "Fuera de rango", Flirtiness: 2, Friendliness: -1, Formality: 1.5, WantPrefix: "Thank you for your message.", WantEmojis: 3},
	}
}

func defaultSliderScenarios() []SliderScenario {
	sliders := []SliderScenario{
		{Name: "Romántico", Flirtiness: 8, Friendliness: 7, Formality: 3, WantRule: "romantic"},
		{Name: "Formal", Flirtiness: 2, Friendliness: 2, Formality: 8, WantRule: "formal"},
	}
	for _, p := range service.Presets() {
		sliders = append(sliders, SliderScenario{
			Name:         "Preset " + p.Name,
			Flirtiness:   p.Style.Flirtiness,
			Friendliness: p.Style.Friendliness,
			Formality:    p.Style.Formality,
			WantRule:     presetRules[p.Name],
		})
	}
	return sliders
}

// runChecks corre ambas tablas, escribe PASS/FAIL por escenario en w y devuelve la cantidad de fallas.
func runChecks(w io.Writer, scenarios []Scenario, sliders []SliderScenario) int {
	gen := service.DefaultTonePreviewGenerator
	failures := 0

	fmt.Fprintln(w, "===== Preview fraccional =====")
	for _, sc := range scenarios {
		preview := gen.GeneratePreview(sc.Flirtiness, sc.Friendliness, sc.Formality)
		emojis := len(strings.Fields(strings.TrimPrefix(preview, gen.BaseSentence(sc.Formality))))
		ok := strings.HasPrefix(preview, sc.WantPrefix) && emojis == sc.WantEmojis
		failures += report(w, sc.Name, preview, ok)
	}

	fmt.Fprintln(w, "===== Sliders 0-10 =====")
	for _, sc := range sliders {
		preview := gen.GenerateSimplePreview(sc.Flirtiness, sc.Friendliness, sc.Formality)
		rule := gen.SliderRuleName(domain.SliderStyle{
			Flirtiness:   sc.Flirtiness,
			Friendliness: sc.Friendliness,
			Formality:    sc.Formality,
		})
		failures += report(w, sc.Name, preview, rule == sc.WantRule)
	}
	return failures
}

func report(w io.Writer, name, preview string, ok bool) int {
	status := "PASS"
	if !ok {
		status = "FAIL"
	}
	fmt.Fprintf(w, "[%s] %s\n    %s\n", status, name, preview)
	if ok {
		return 0
	}
	return 1
}
