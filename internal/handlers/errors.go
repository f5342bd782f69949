package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomescape/internal/queue"
	"roomescape/internal/response"
)

// writeError переводит ошибки очереди в HTTP-ответ.
func writeError(c *gin.Context, err error) {
	status, body := http.StatusInternalServerError, response.ErrorResponse{
		Code:    "DB_ERROR",
		Message: "Ошибка хранилища",
	}

	switch {
	case queue.IsNotFound(err):
		status = http.StatusNotFound
		switch queue.NotFoundKind(err) {
		case queue.KindSchedule:
			body = response.ErrorResponse{Code: "SCHEDULE_NOT_FOUND", Message: "Слот расписания не найден"}
		case queue.KindMember:
			body = response.ErrorResponse{Code: "MEMBER_NOT_FOUND", Message: "Участник не найден"}
		case queue.KindQueueHead:
			body = response.ErrorResponse{Code: "QUEUE_EMPTY", Message: "В очереди никого нет"}
		default:
			body = response.ErrorResponse{Code: "WAITING_NOT_FOUND", Message: "Запись не найдена в очереди"}
		}
	case queue.IsValidation(err):
		status = http.StatusBadRequest
		body = response.ErrorResponse{Code: "VALIDATION_ERROR", Message: "Ошибка валидации данных"}
	case queue.IsDuplicate(err):
		status = http.StatusConflict
		body = response.ErrorResponse{Code: "ALREADY_WAITING", Message: "Участник уже стоит в очереди на этот слот"}
	case queue.IsNotOwner(err):
		status = http.StatusForbidden
		body = response.ErrorResponse{Code: "NOT_OWNER", Message: "Можно отменить только свою запись"}
	}

	body.Details = err.Error()
	c.JSON(status, body)
}
