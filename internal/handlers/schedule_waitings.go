package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListForSchedule godoc
// @Summary		Очередь слота
// @Description	Записи листа ожидания слота в порядке очереди. Для пустой очереди возвращается пустой список
// @Tags			schedules
// @Produce		json
// @Param			id	path	int	true	"ID слота"
// @Security		BearerAuth
// @Success		200	{array}		queue.EntrySummary		"Очередь"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_SCHEDULE_ID)"
// @Router			/api/schedules/{id}/waitings [get]
func (h *WaitingHandler) ListForSchedule(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}

	entries, err := h.waitings.ListForResource(c.Request.Context(), scheduleID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// PeekHead godoc
// @Summary		Первый в очереди
// @Description	Запись с позицией 1. Перед продвижением в бронь статус нужно перепроверить
// @Tags			schedules
// @Produce		json
// @Param			id	path	int	true	"ID слота"
// @Security		BearerAuth
// @Success		200	{object}	queue.EntrySummary		"Первая запись"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_SCHEDULE_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Очередь пуста (QUEUE_EMPTY)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/schedules/{id}/waitings/head [get]
func (h *WaitingHandler) PeekHead(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}

	head, err := h.waitings.PeekHead(c.Request.Context(), scheduleID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, head)
}
