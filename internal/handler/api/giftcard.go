package api

import (
	"net/http"

	resdto "salon-backoffice/internal/handler/dto/response"
	"salon-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type GiftCardHandler struct {
	q queries.GiftCardQueries
}

func NewGiftCardHandler(q queries.GiftCardQueries) *GiftCardHandler {
	return &GiftCardHandler{q: q}
}

// @Summary Verify gift card
// @Description Look a gift card up by code and report whether it can pay for a reservation
// @Tags gift-cards
// @Produce json
// @Security BearerAuth
// @Param code path string true "Gift card code"
// @Success 200 {object} resdto.GiftCardResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/gift-cards/{code} [get]
func (h *GiftCardHandler) VerifyGiftCard(c *gin.Context) {
	view, err := h.q.VerifyGiftCard(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromGiftCardView(view))
}
