package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMine godoc
// @Summary		Мои записи в листах ожидания
// @Description	Все записи текущего участника с текущими позициями. Пустой список является нормальным ответом
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		queue.EntrySummary		"Записи участника"
// @Failure		401	{object}	response.ErrorResponse	"Требуется авторизация"
// @Router			/api/waitings/mine [get]
func (h *WaitingHandler) ListMine(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	entries, err := h.waitings.ListForRequester(c.Request.Context(), memberID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
