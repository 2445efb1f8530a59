package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tone-preview/internal/backend"
	"tone-preview/internal/domain"
	"tone-preview/internal/service"
)

// PreviewHandler mantiene dependencias para los endpoints de preview de estilo.
type PreviewHandler struct {
	logger    *zap.Logger
	styleServ *service.StyleService
	generator service.TonePreviewGenerator
}

// NewPreviewHandler crea una instancia de PreviewHandler.
func NewPreviewHandler(logger *zap.Logger, styleServ *service.StyleService) *PreviewHandler {
	return &PreviewHandler{
		logger:    logger,
		styleServ: styleServ,
		generator: service.DefaultTonePreviewGenerator,
	}
}

type presetResponse struct {
	Name         string `json:"name"`
	Flirtiness   int    `json:"flirtiness"`
	Friendliness int    `json:"friendliness"`
	Formality    int    `json:"formality"`
	Preview      string `json:"preview"`
}

// Preview maneja POST /api/preview.
func (h *PreviewHandler) Preview(c *gin.Context) {
	var req domain.StylePreferencesPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	prefs := domain.DefaultStylePreferences()
	if req.Flirtiness != nil {
		prefs.Flirtiness = *req.Flirtiness
	}
	if req.Friendliness != nil {
		prefs.Friendliness = *req.Friendliness
	}
	if req.Formality != nil {
		prefs.Formality = *req.Formality
	}

	c.JSON(http.StatusOK, h.styleServ.Preview(prefs))
}

// PercentPreview maneja POST /api/preview/percent: sliders 0-100 del dashboard.
func (h *PreviewHandler) PercentPreview(c *gin.Context) {
	var req struct {
		Flirtiness   *int `json:"flirtiness"`
		Friendliness *int `json:"friendliness"`
		Formality    *int `json:"formality"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid percent preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	prefs := domain.DefaultStylePreferences()
	if req.Flirtiness != nil {
		prefs.Flirtiness = service.FromPercent(*req.Flirtiness)
	}
	if req.Friendliness != nil {
		prefs.Friendliness = service.FromPercent(*req.Friendliness)
	}
	if req.Formality != nil {
		prefs.Formality = service.FromPercent(*req.Formality)
	}

	c.JSON(http.StatusOK, h.styleServ.Preview(prefs))
}

// SimplePreview maneja POST /api/preview/simple.
func (h *PreviewHandler) SimplePreview(c *gin.Context) {
	var req domain.SliderStyle
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid simple preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preview": h.generator.GenerateSimplePreview(req.Flirtiness, req.Friendliness, req.Formality),
	})
}

// ListPresets maneja GET /api/preview/presets.
func (h *PreviewHandler) ListPresets(c *gin.Context) {
	presets := service.Presets()
	out := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		out = append(out, h.presetResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

// GetPreset maneja GET /api/preview/presets/:name.
func (h *PreviewHandler) GetPreset(c *gin.Context) {
	preset, err := service.LookupPreset(c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownPreset) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load preset"})
		return
	}
	c.JSON(http.StatusOK, h.presetResponse(preset))
}

// StoredPreview maneja GET /api/users/style-preferences/preview.
func (h *PreviewHandler) StoredPreview(c *gin.Context) {
	userID, token, ok := h.authContext(c)
	if !ok {
		return
	}

	preview, err := h.styleServ.StoredPreview(c.Request.Context(), userID, token)
	if err != nil {
		h.writeBackendError(c, "stored preview failed", err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// UpdateAndPreview maneja PUT /api/users/style-preferences/preview.
func (h *PreviewHandler) UpdateAndPreview(c *gin.Context) {
	userID, token, ok := h.authContext(c)
	if !ok {
		return
	}

	var req domain.StylePreferencesPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update preferences request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	preview, err := h.styleServ.UpdateAndPreview(c.Request.Context(), userID, token, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeBackendError(c, "update preferences failed", err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *PreviewHandler) authContext(c *gin.Context) (string, string, bool) {
	claims, ok := GetAuthClaims(c)
	token, tokOK := GetAuthToken(c)
	if !ok || !tokOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return "", "", false
	}
	return claims.UserID(), token, true
}

func (h *PreviewHandler) writeBackendError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, backend.ErrBackendUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
	}
}

func (h *PreviewHandler) presetResponse(p domain.StylePreset) presetResponse {
	return presetResponse{
		Name:         p.Name,
		Flirtiness:   p.Style.Flirtiness,
		Friendliness: p.Style.Friendliness,
		Formality:    p.Style.Formality,
		Preview:      h.generator.GenerateSimplePreview(p.Style.Flirtiness, p.Style.Friendliness, p.Style.Formality),
	}
}
