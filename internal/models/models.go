package models

// Member принадлежит сервису идентификации; здесь только читается.
type Member struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;size:64;not null"`
	Name     string `gorm:"size:64;not null"`
	Phone    string `gorm:"size:32"`
	Role     string `gorm:"size:16;not null;default:MEMBER"`
}

// Theme принадлежит каталогу.
type Theme struct {
	ID    int64  `gorm:"primaryKey"`
	Name  string `gorm:"size:64;not null"`
	Desc  string `gorm:"column:desc;size:255"`
	Price int    `gorm:"not null"`
}
