package memory

import (
	"context"
	"sync"

	"roomescape/internal/queue"
)

// Directory держит участников и слоты в памяти. Заменяет внешние сервисы
// идентификации и расписания в локальном режиме и в тестах.
type Directory struct {
	mu      sync.RWMutex
	members map[int64]queue.MemberSummary
	slots   map[int64]queue.SlotSummary
}

func NewDirectory() *Directory {
	return &Directory{
		members: make(map[int64]queue.MemberSummary),
		slots:   make(map[int64]queue.SlotSummary),
	}
}

func (d *Directory) PutMember(m queue.MemberSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.members[m.ID] = m
}

func (d *Directory) PutSlot(s queue.SlotSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slots[s.ID] = s
}

func (d *Directory) RemoveSlot(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.slots, id)
}

func (d *Directory) RemoveMember(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.members, id)
}

func (d *Directory) ResolveMember(ctx context.Context, id int64) (queue.MemberSummary, error) {
	if err := ctx.Err(); err != nil {
		return queue.MemberSummary{}, &queue.StoreError{Op: "resolve member", Err: err}
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.members[id]
	if !ok {
		return queue.MemberSummary{}, &queue.NotFoundError{Kind: queue.KindMember, ID: id}
	}
	return m, nil
}

func (d *Directory) ResolveSlot(ctx context.Context, id int64) (queue.SlotSummary, error) {
	if err := ctx.Err(); err != nil {
		return queue.SlotSummary{}, &queue.StoreError{Op: "resolve slot", Err: err}
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.slots[id]
	if !ok {
		return queue.SlotSummary{}, &queue.NotFoundError{Kind: queue.KindSchedule, ID: id}
	}
	return s, nil
}

func (d *Directory) member(id int64) (queue.MemberSummary, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.members[id]
	return m, ok
}

func (d *Directory) slot(id int64) (queue.SlotSummary, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.slots[id]
	return s, ok
}
