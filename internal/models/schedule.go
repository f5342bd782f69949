package models

import "time"

// Schedule описывает слот расписания: тему, дату и время. Им владеет сервис расписания.
type Schedule struct {
	ID      int64     `gorm:"primaryKey"`
	ThemeID int64     `gorm:"index;not null"`
	Theme   Theme     `gorm:"foreignKey:ThemeID"`
	Date    time.Time `gorm:"type:date;index;not null"`
	Time    string    `gorm:"type:time;not null"` // 15:04:05
}
