package queue

// Entry описывает участника, который ждёт освобождения конкретного слота расписания.
// Позиция не хранится, она всегда вычисляется (см. PositionOf).
type Entry struct {
	ID         int64
	ScheduleID int64
	MemberID   int64
	Slot       SlotSummary
	Member     MemberSummary
}

// SlotSummary содержит отображаемые данные слота из каталога расписания.
type SlotSummary struct {
	ID        int64  `json:"id"`
	ThemeName string `json:"theme_name"`
	Price     int    `json:"price"`
	Date      string `json:"date"` // 2006-01-02
	Time      string `json:"time"` // 15:04
}

// MemberSummary содержит отображаемые данные участника.
type MemberSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// EntrySummary отдаётся наружу: запись вместе с вычисленной позицией.
type EntrySummary struct {
	ID         int64         `json:"id"`
	ScheduleID int64         `json:"schedule_id"`
	MemberID   int64         `json:"member_id"`
	Position   int           `json:"position"`
	Slot       SlotSummary   `json:"schedule"`
	Member     MemberSummary `json:"member"`
}

func (e Entry) summary(position int) EntrySummary {
	return EntrySummary{
		ID:         e.ID,
		ScheduleID: e.ScheduleID,
		MemberID:   e.MemberID,
		Position:   position,
		Slot:       e.Slot,
		Member:     e.Member,
	}
}
