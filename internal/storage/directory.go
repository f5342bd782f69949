package storage

import (
	"context"

	"gorm.io/gorm"

	"roomescape/internal/models"
	"roomescape/internal/queue"
)

// Directory читает участников и слоты из таблиц, которыми владеют
// сервисы идентификации и расписания.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) ResolveMember(ctx context.Context, id int64) (queue.MemberSummary, error) {
	var m models.Member
	if err := d.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return queue.MemberSummary{}, translate(err, "resolve member", queue.KindMember, id)
	}
	return toMember(m), nil
}

func (d *Directory) ResolveSlot(ctx context.Context, id int64) (queue.SlotSummary, error) {
	var s models.Schedule
	if err := d.db.WithContext(ctx).Joins("Theme").First(&s, id).Error; err != nil {
		return queue.SlotSummary{}, translate(err, "resolve slot", queue.KindSchedule, id)
	}
	return toSlot(s), nil
}
