package api

import (
	"net/http"

	reqdto "salon-backoffice/internal/handler/dto/request"
	"salon-backoffice/internal/handler/httperr"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	cmds commands.SettingsCommands
	q    queries.SettingsQueries
}

func NewSettingsHandler(cmds commands.SettingsCommands, q queries.SettingsQueries) *SettingsHandler {
	return &SettingsHandler{cmds: cmds, q: q}
}

// @Summary Get loyalty settings
// @Description Current loyalty thresholds and discount amounts
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} loyalty.Settings
// @Router /api/settings/loyalty [get]
func (h *SettingsHandler) GetLoyaltySettings(c *gin.Context) {
	s, err := h.q.GetSettings(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary Update loyalty settings
// @Description Partial update; omitted fields keep their current value
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} loyalty.Settings
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/settings/loyalty [put]
func (h *SettingsHandler) UpdateLoyaltySettings(c *gin.Context) {
	var req reqdto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	current, err := h.q.GetSettings(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	updated, err := h.cmds.UpdateSettings(c.Request.Context(), req.Merge(current))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
