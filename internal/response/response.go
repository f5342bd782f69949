package response

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: WAITING_NOT_FOUND
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Запись не найдена в очереди
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: waiting 42 not found
	Details string `json:"details,omitempty"`
}

// JoinResponse содержит id новой записи и её позицию сразу после вступления.
// Position отсутствует, если позицию не удалось вычислить: запись при этом создана.
type JoinResponse struct {
	ID       int64 `json:"id" example:"17"`
	Position int   `json:"position,omitempty" example:"3"`
}

// PositionResponse содержит текущую позицию записи в очереди
type PositionResponse struct {
	ID       int64 `json:"id" example:"17"`
	Position int   `json:"position" example:"1"`
}
