package queue

import "context"

// Store хранит записи ожидания.
//
// Реализации обязаны присваивать id монотонно в порядке фиксации вставок,
// никогда не переиспользовать id и выполнять CountAhead и ListBySchedule
// одним запросом к согласованному снимку данных.
// Ошибки: *NotFoundError для отсутствующих строк, *StoreError для сбоев.
type Store interface {
	Counter

	Insert(ctx context.Context, scheduleID, memberID int64) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Entry, error)
	// ListByMember упорядочен по id; порядок между разными слотами смысла не несёт.
	ListByMember(ctx context.Context, memberID int64) ([]Entry, error)
	// ListBySchedule строго упорядочен по id по возрастанию: это и есть порядок очереди.
	ListBySchedule(ctx context.Context, scheduleID int64) ([]Entry, error)
	HeadOfLine(ctx context.Context, scheduleID int64) (Entry, error)
}

// Counter считает ещё существующие записи слота с меньшим id.
type Counter interface {
	CountAhead(ctx context.Context, scheduleID, id int64) (int64, error)
}

// MemberResolver отвечает на вопросы об участниках вместо внешнего сервиса идентификации.
type MemberResolver interface {
	ResolveMember(ctx context.Context, id int64) (MemberSummary, error)
}

// SlotResolver отдаёт данные слотов из каталога расписания.
type SlotResolver interface {
	ResolveSlot(ctx context.Context, id int64) (SlotSummary, error)
}
