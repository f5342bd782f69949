package memory

import (
	"context"
	"sync"

	"github.com/tidwall/btree"

	"roomescape/internal/queue"
)

type row struct {
	id         int64
	scheduleID int64
	memberID   int64
}

// Store хранит записи ожидания в памяти процесса.
// Один мьютекс сериализует выдачу id и поддерживает согласованность индексов.
type Store struct {
	lock       sync.RWMutex
	seq        int64
	byID       map[int64]row
	bySchedule *btree.BTreeG[row]
	byMember   *btree.BTreeG[row]
	dir        *Directory
}

// NewStore создаёт хранилище. Если dir не nil, вставка проверяет ссылки
// как внешние ключи, а чтения подставляют отображаемые данные.
func NewStore(dir *Directory) *Store {
	opts := btree.Options{NoLocks: true}
	return &Store{
		byID: make(map[int64]row),
		bySchedule: btree.NewBTreeGOptions(func(a, b row) bool {
			if a.scheduleID != b.scheduleID {
				return a.scheduleID < b.scheduleID
			}
			return a.id < b.id
		}, opts),
		byMember: btree.NewBTreeGOptions(func(a, b row) bool {
			if a.memberID != b.memberID {
				return a.memberID < b.memberID
			}
			return a.id < b.id
		}, opts),
		dir: dir,
	}
}

func (s *Store) Insert(ctx context.Context, scheduleID, memberID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &queue.StoreError{Op: "insert", Err: err}
	}
	if s.dir != nil {
		if _, ok := s.dir.slot(scheduleID); !ok {
			return 0, &queue.NotFoundError{Kind: queue.KindSchedule, ID: scheduleID}
		}
		if _, ok := s.dir.member(memberID); !ok {
			return 0, &queue.NotFoundError{Kind: queue.KindMember, ID: memberID}
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.seq++
	r := row{id: s.seq, scheduleID: scheduleID, memberID: memberID}
	s.byID[r.id] = r
	s.bySchedule.Set(r)
	s.byMember.Set(r)
	return r.id, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return &queue.StoreError{Op: "delete", Err: err}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return &queue.NotFoundError{Kind: queue.KindWaiting, ID: id}
	}
	s.remove(r)
	return nil
}

func (s *Store) remove(r row) {
	delete(s.byID, r.id)
	s.bySchedule.Delete(r)
	s.byMember.Delete(r)
}

func (s *Store) GetByID(ctx context.Context, id int64) (queue.Entry, error) {
	if err := ctx.Err(); err != nil {
		return queue.Entry{}, &queue.StoreError{Op: "get", Err: err}
	}

	s.lock.RLock()
	r, ok := s.byID[id]
	s.lock.RUnlock()
	if !ok {
		return queue.Entry{}, &queue.NotFoundError{Kind: queue.KindWaiting, ID: id}
	}
	return s.entry(r), nil
}

func (s *Store) ListByMember(ctx context.Context, memberID int64) ([]queue.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &queue.StoreError{Op: "list by member", Err: err}
	}

	var rows []row
	s.lock.RLock()
	s.byMember.Ascend(row{memberID: memberID}, func(r row) bool {
		if r.memberID != memberID {
			return false
		}
		rows = append(rows, r)
		return true
	})
	s.lock.RUnlock()

	return s.entries(rows), nil
}

func (s *Store) ListBySchedule(ctx context.Context, scheduleID int64) ([]queue.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &queue.StoreError{Op: "list by schedule", Err: err}
	}

	var rows []row
	s.lock.RLock()
	s.bySchedule.Ascend(row{scheduleID: scheduleID}, func(r row) bool {
		if r.scheduleID != scheduleID {
			return false
		}
		rows = append(rows, r)
		return true
	})
	s.lock.RUnlock()

	return s.entries(rows), nil
}

func (s *Store) HeadOfLine(ctx context.Context, scheduleID int64) (queue.Entry, error) {
	if err := ctx.Err(); err != nil {
		return queue.Entry{}, &queue.StoreError{Op: "head of line", Err: err}
	}

	var (
		head  row
		found bool
	)
	s.lock.RLock()
	s.bySchedule.Ascend(row{scheduleID: scheduleID}, func(r row) bool {
		if r.scheduleID == scheduleID {
			head, found = r, true
		}
		return false
	})
	s.lock.RUnlock()

	if !found {
		return queue.Entry{}, &queue.NotFoundError{Kind: queue.KindQueueHead, ID: scheduleID}
	}
	return s.entry(head), nil
}

func (s *Store) CountAhead(ctx context.Context, scheduleID, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &queue.StoreError{Op: "count ahead", Err: err}
	}

	var n int64
	s.lock.RLock()
	s.bySchedule.Ascend(row{scheduleID: scheduleID}, func(r row) bool {
		if r.scheduleID != scheduleID || r.id >= id {
			return false
		}
		n++
		return true
	})
	s.lock.RUnlock()
	return n, nil
}

// PurgeBefore удаляет записи, чей слот назначен на дату раньше cutoff (формат 2006-01-02).
// Без Directory даты слотов неизвестны, и удалять нечего.
func (s *Store) PurgeBefore(ctx context.Context, cutoff string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &queue.StoreError{Op: "purge", Err: err}
	}
	if s.dir == nil {
		return 0, nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	var stale []row
	for _, r := range s.byID {
		if slot, ok := s.dir.slot(r.scheduleID); ok && slot.Date < cutoff {
			stale = append(stale, r)
		}
	}
	for _, r := range stale {
		s.remove(r)
	}
	return int64(len(stale)), nil
}

func (s *Store) entries(rows []row) []queue.Entry {
	result := make([]queue.Entry, 0, len(rows))
	for _, r := range rows {
		result = append(result, s.entry(r))
	}
	return result
}

func (s *Store) entry(r row) queue.Entry {
	e := queue.Entry{
		ID:         r.id,
		ScheduleID: r.scheduleID,
		MemberID:   r.memberID,
		Slot:       queue.SlotSummary{ID: r.scheduleID},
		Member:     queue.MemberSummary{ID: r.memberID},
	}
	if s.dir != nil {
		if slot, ok := s.dir.slot(r.scheduleID); ok {
			e.Slot = slot
		}
		if m, ok := s.dir.member(r.memberID); ok {
			e.Member = m
		}
	}
	return e
}
