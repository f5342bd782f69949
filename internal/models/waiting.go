package models

import "time"

// Waiting описывает запись листа ожидания. Позиция в очереди не хранится:
// порядок задаётся id, позиция вычисляется при каждом чтении.
type Waiting struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ScheduleID int64     `gorm:"index;not null"`
	Schedule   Schedule  `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	MemberID   int64     `gorm:"index;not null"`
	Member     Member    `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"not null"`
}

// All перечисляет модели в порядке AutoMigrate: сначала таблицы, на которые ссылаются.
func All() []interface{} {
	return []interface{}{&Member{}, &Theme{}, &Schedule{}, &Waiting{}}
}
