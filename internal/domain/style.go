package domain

// Valores por defecto de estilo cuando el backend no devuelve un campo.
const (
	DefaultFlirtiness   = 0.5
	DefaultFriendliness = 0.7
	DefaultFormality    = 0.3
)

// StylePreferences agrupa los tres diales de tono, cada uno en [0, 1].
type StylePreferences struct {
	Flirtiness   float64 `json:"flirtiness"`
	Friendliness float64 `json:"friendliness"`
	Formality    float64 `json:"formality"`
}

// DefaultStylePreferences devuelve las preferencias iniciales de un creador nuevo.
func DefaultStylePreferences() StylePreferences {
	return StylePreferences{
		Flirtiness:   DefaultFlirtiness,
		Friendliness: DefaultFriendliness,
		Formality:    DefaultFormality,
	}
}

// StylePreferencesPatch representa una actualización parcial; los campos nil no se envían.
type StylePreferencesPatch struct {
	Flirtiness   *float64 `json:"flirtiness,omitempty"`
	Friendliness *float64 `json:"friendliness,omitempty"`
	Formality    *float64 `json:"formality,omitempty"`
}

// IsEmpty indica si el patch no trae ningún campo.
func (p StylePreferencesPatch) IsEmpty() bool {
	return p.Flirtiness == nil && p.Friendliness == nil && p.Formality == nil
}

// SliderStyle son los valores enteros 0-10 de los sliders de la demo.
type SliderStyle struct {
	Flirtiness   int `json:"flirtiness"`
	Friendliness int `json:"friendliness"`
	Formality    int `json:"formality"`
}

// StylePreset es un preset con nombre para los sliders 0-10.
type StylePreset struct {
	Name  string      `json:"name"`
	Style SliderStyle `json:"style"`
}

// StylePreview es la respuesta de preview junto a las preferencias usadas.
type StylePreview struct {
	Preferences StylePreferences `json:"preferences"`
	Preview     string           `json:"preview"`
}
