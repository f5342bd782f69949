package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roomescape/internal/auth"
	"roomescape/internal/queue"
	"roomescape/internal/response"
)

type WaitingHandler struct {
	waitings waitingService
}

type waitingService interface {
	JoinAndRank(ctx context.Context, scheduleID, memberID int64) (int64, int, error)
	LeaveAs(ctx context.Context, id, memberID int64) error
	GetPosition(ctx context.Context, id int64) (int, error)
	ListForRequester(ctx context.Context, memberID int64) ([]queue.EntrySummary, error)
	ListForResource(ctx context.Context, scheduleID int64) ([]queue.EntrySummary, error)
	PeekHead(ctx context.Context, scheduleID int64) (queue.EntrySummary, error)
}

func NewWaitingHandler(waitings waitingService) *WaitingHandler {
	return &WaitingHandler{waitings: waitings}
}

type JoinRequest struct {
	ScheduleID int64 `json:"schedule_id" binding:"required,gt=0" example:"5"`
}

// Join обрабатывает запрос на вступление в лист ожидания
// @Summary		Вступление в лист ожидания
// @Description	Ставит текущего участника в очередь на занятый слот и возвращает позицию
// @Tags			waitings
// @Accept			json
// @Produce		json
// @Param			request	body		JoinRequest				true	"Слот расписания"
// @Security		BearerAuth
// @Success		201		{object}	response.JoinResponse	"Запись создана"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Слот или участник не найден (SCHEDULE_NOT_FOUND, MEMBER_NOT_FOUND)"
// @Failure		409		{object}	response.ErrorResponse	"Участник уже в очереди (ALREADY_WAITING)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/waitings [post]
func (h *WaitingHandler) Join(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	id, position, err := h.waitings.JoinAndRank(c.Request.Context(), req.ScheduleID, memberID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/waitings/%d", id))
	c.JSON(http.StatusCreated, response.JoinResponse{ID: id, Position: position})
}

// Leave обрабатывает отмену записи в листе ожидания
// @Summary		Выход из листа ожидания
// @Description	Удаляет запись текущего участника. Позиции остальных пересчитываются автоматически
// @Tags			waitings
// @Produce		json
// @Param			id	path	int	true	"ID записи"
// @Security		BearerAuth
// @Success		204	"Запись удалена"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_WAITING_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужая запись (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (WAITING_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/waitings/{id} [delete]
func (h *WaitingHandler) Leave(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "INVALID_WAITING_ID")
	if !ok {
		return
	}

	if err := h.waitings.LeaveAs(c.Request.Context(), id, memberID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPosition возвращает текущую позицию записи
// @Summary		Позиция в очереди
// @Description	Позиция вычисляется при каждом запросе: 1 + число более ранних записей того же слота
// @Tags			waitings
// @Produce		json
// @Param			id	path	int	true	"ID записи"
// @Security		BearerAuth
// @Success		200	{object}	response.PositionResponse	"Текущая позиция"
// @Failure		400	{object}	response.ErrorResponse		"Неверный идентификатор (INVALID_WAITING_ID)"
// @Failure		404	{object}	response.ErrorResponse		"Записи нет в очереди (WAITING_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/waitings/{id}/position [get]
func (h *WaitingHandler) GetPosition(c *gin.Context) {
	id, ok := pathID(c, "id", "INVALID_WAITING_ID")
	if !ok {
		return
	}

	position, err := h.waitings.GetPosition(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.PositionResponse{ID: id, Position: position})
}

func currentMember(c *gin.Context) (int64, bool) {
	memberID, ok := auth.MemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "NO_AUTH_HEADER",
			Message: "Требуется авторизация",
		})
		return 0, false
	}
	return memberID, true
}

func pathID(c *gin.Context, param, code string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    code,
			Message: "Неверный идентификатор",
		})
		return 0, false
	}
	return id, true
}
