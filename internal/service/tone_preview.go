package service

import (
	"math"
	"strings"

	"tone-preview/internal/domain"
)

// Umbrales de registro (formalidad) y paleta (flirteo) para el preview fraccional.
const (
	casualFormalityBelow = 0.3
	formalFormalityFrom  = 0.7
	warmFlirtinessAbove  = 0.3
	romanticFlirtAbove   = 0.7
	emojiPerPoint        = 3.0
)

const (
	casualSentence  = "Hey there! Thanks for your msg! Really appreciate your support!"
	neutralSentence = "Thanks for your message! I really appreciate your support."
	formalSentence  = "Thank you for your message. I sincerely appreciate your support."
)

// Paletas ordenadas; el preview toma siempre un prefijo.
var (
	romanticPalette = []string{"💋", "😘", "💖", "🔥", "😉"}
	warmPalette     = []string{"💕", "😊", "💗", "✨", "💯"}
	neutralPalette  = []string{"👍", "🙂", "👋", "✨", "🙏"}
)

type sentenceTier struct {
	matches  func(formality float64) bool
	sentence string
}

type paletteTier struct {
	matches func(flirtiness float64) bool
	palette []string
}

// Se evalúan en orden; gana el primero que coincide.
var sentenceTiers = []sentenceTier{
	{matches: func(f float64) bool { return f < casualFormalityBelow }, sentence: casualSentence},
	{matches: func(f float64) bool { return f < formalFormalityFrom }, sentence: neutralSentence},
	{matches: func(float64) bool { return true }, sentence: formalSentence},
}

var paletteTiers = []paletteTier{
	{matches: func(f float64) bool { return f > romanticFlirtAbove }, palette: romanticPalette},
	{matches: func(f float64) bool { return f > warmFlirtinessAbove }, palette: warmPalette},
	{matches: func(float64) bool { return true }, palette: neutralPalette},
}

// TonePreviewGenerator genera respuestas de ejemplo a partir de los diales de estilo.
// No tiene estado: es seguro usarlo desde varias goroutines.
type TonePreviewGenerator struct{}

// DefaultTonePreviewGenerator permite uso directo sin instanciar.
var DefaultTonePreviewGenerator = TonePreviewGenerator{}

// GeneratePreview arma la frase base según formalidad y le agrega emojis según flirteo y simpatía.
func (g TonePreviewGenerator) GeneratePreview(flirtiness, friendliness, formality float64) string {
	flirtiness = ClampUnit(flirtiness)
	friendliness = ClampUnit(friendliness)
	formality = ClampUnit(formality)

	var b strings.Builder
	b.WriteString(g.BaseSentence(formality))
	palette := g.EmojiPalette(flirtiness)
	count := g.EmojiCount(flirtiness, friendliness)
	for _, emoji := range palette[:count] {
		b.WriteByte(' ')
		b.WriteString(emoji)
	}
	return b.String()
}

// PreviewFor es un atajo de GeneratePreview para StylePreferences.
func (g TonePreviewGenerator) PreviewFor(prefs domain.StylePreferences) string {
	return g.GeneratePreview(prefs.Flirtiness, prefs.Friendliness, prefs.Formality)
}

// BaseSentence devuelve la frase del registro que corresponde a la formalidad.
func (TonePreviewGenerator) BaseSentence(formality float64) string {
	formality = ClampUnit(formality)
	for _, tier := range sentenceTiers {
		if tier.matches(formality) {
			return tier.sentence
		}
	}
	return formalSentence
}

// EmojiPalette elige la paleta solo por flirteo. Devuelve una copia.
func (TonePreviewGenerator) EmojiPalette(flirtiness float64) []string {
	flirtiness = ClampUnit(flirtiness)
	for _, tier := range paletteTiers {
		if tier.matches(flirtiness) {
			return append([]string(nil), tier.palette...)
		}
	}
	return append([]string(nil), neutralPalette...)
}

// EmojiCount calcula round((friendliness+flirtiness)*3) acotado al largo de la paleta.
// math.Round redondea los .5 alejándose de cero.
func (TonePreviewGenerator) EmojiCount(flirtiness, friendliness float64) int {
	raw := math.Round((ClampUnit(friendliness) + ClampUnit(flirtiness)) * emojiPerPoint)
	count := int(raw)
	if count < 0 {
		return 0
	}
	if count > len(neutralPalette) {
		return len(neutralPalette)
	}
	return count
}

// ClampUnit acota v a [0, 1]. NaN se trata como 0.
func ClampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampPreferences acota los tres diales de prefs.
func ClampPreferences(prefs domain.StylePreferences) domain.StylePreferences {
	return domain.StylePreferences{
		Flirtiness:   ClampUnit(prefs.Flirtiness),
		Friendliness: ClampUnit(prefs.Friendliness),
		Formality:    ClampUnit(prefs.Formality),
	}
}

// FromPercent convierte el valor de un slider 0-100 a fracción.
func FromPercent(percent int) float64 {
	return ClampUnit(float64(percent) / 100)
}
