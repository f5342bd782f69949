package queue

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager ведёт жизненный цикл записей листа ожидания.
// Между вызовами состояния не хранит, за согласованность отвечает Store.
type Manager struct {
	store   Store
	members MemberResolver
	slots   SlotResolver
	logger  *logrus.Logger

	rejectDuplicates bool
	timeout          time.Duration
}

type Option func(*Manager)

// WithRejectDuplicates запрещает участнику иметь две записи на один слот.
func WithRejectDuplicates(reject bool) Option {
	return func(m *Manager) { m.rejectDuplicates = reject }
}

// WithTimeout ограничивает каждый вызов хранилища.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

func NewManager(store Store, members MemberResolver, slots SlotResolver, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		members: members,
		slots:   slots,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.timeout)
}

// Join ставит участника в очередь на слот и возвращает id новой записи.
//
// Существование слота и участника проверяется у внешних владельцев до вставки.
// Ссылка может исчезнуть между проверкой и вставкой. Эту редкую гонку принимаем:
// хранилище в этом случае само вернёт NotFoundError по внешнему ключу.
func (m *Manager) Join(ctx context.Context, scheduleID, memberID int64) (int64, error) {
	if err := validateRef("schedule_id", scheduleID); err != nil {
		return 0, err
	}
	if err := validateRef("member_id", memberID); err != nil {
		return 0, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if _, err := m.slots.ResolveSlot(ctx, scheduleID); err != nil {
		return 0, err
	}
	if _, err := m.members.ResolveMember(ctx, memberID); err != nil {
		return 0, err
	}

	if m.rejectDuplicates {
		existing, err := m.store.ListByMember(ctx, memberID)
		if err != nil {
			return 0, err
		}
		for _, e := range existing {
			if e.ScheduleID == scheduleID {
				return 0, &DuplicateError{ScheduleID: scheduleID, MemberID: memberID, ExistingID: e.ID}
			}
		}
	}

	id, err := m.store.Insert(ctx, scheduleID, memberID)
	if err != nil {
		return 0, err
	}

	m.logger.WithContext(ctx).WithFields(logrus.Fields{
		"entry_id":    id,
		"schedule_id": scheduleID,
		"member_id":   memberID,
	}).Info("waiting entry created")

	return id, nil
}

// JoinAndRank делает Join и сразу вычисляет позицию новой записи.
// Позиция не обязательно 1: в очереди уже могут быть другие участники.
//
// Запись уже сохранена, поэтому сбой подсчёта позиции не превращается в ошибку:
// возвращается id и позиция 0 (неизвестна), её можно запросить позже через GetPosition.
func (m *Manager) JoinAndRank(ctx context.Context, scheduleID, memberID int64) (int64, int, error) {
	id, err := m.Join(ctx, scheduleID, memberID)
	if err != nil {
		return 0, 0, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	position, err := PositionOf(ctx, m.store, Entry{ID: id, ScheduleID: scheduleID, MemberID: memberID})
	if err != nil {
		m.logger.WithContext(ctx).WithError(err).WithField("entry_id", id).
			Warn("waiting entry created, position unknown")
		return id, 0, nil
	}
	return id, position, nil
}

// Leave удаляет запись: отмена участником или продвижение во внешнем workflow бронирования.
// Позиции остальных записей не переписываются, они вычисляются заново при чтении.
func (m *Manager) Leave(ctx context.Context, id int64) error {
	if err := validateRef("id", id); err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if err := m.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	m.logger.WithContext(ctx).WithField("entry_id", id).Info("waiting entry removed")
	return nil
}

// LeaveAs удаляет запись, только если она принадлежит участнику memberID.
func (m *Manager) LeaveAs(ctx context.Context, id, memberID int64) error {
	if err := validateRef("id", id); err != nil {
		return err
	}

	lookupCtx, cancel := m.withTimeout(ctx)
	entry, err := m.store.GetByID(lookupCtx, id)
	cancel()
	if err != nil {
		return err
	}
	if entry.MemberID != memberID {
		return &NotOwnerError{EntryID: id, MemberID: memberID}
	}

	return m.Leave(ctx, id)
}

// GetPosition возвращает текущую позицию записи.
// Для несуществующей записи возвращает NotFoundError, а не позицию по умолчанию.
func (m *Manager) GetPosition(ctx context.Context, id int64) (int, error) {
	if err := validateRef("id", id); err != nil {
		return 0, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	entry, err := m.store.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return PositionOf(ctx, m.store, entry)
}

// IsHead повторно проверяет, стоит ли запись первой прямо сейчас.
// Workflow продвижения обязан вызвать его непосредственно перед действием:
// голова очереди может смениться из-за отмен впереди.
func (m *Manager) IsHead(ctx context.Context, id int64) (bool, error) {
	position, err := m.GetPosition(ctx, id)
	if err != nil {
		return false, err
	}
	return position == 1, nil
}

// ListForRequester возвращает все записи участника с позициями.
// Сбой хранилища и пустой результат дают пустой список.
func (m *Manager) ListForRequester(ctx context.Context, memberID int64) ([]EntrySummary, error) {
	if err := validateRef("member_id", memberID); err != nil {
		return nil, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	entries, err := m.store.ListByMember(ctx, memberID)
	if err != nil {
		m.logger.WithContext(ctx).WithError(err).WithField("member_id", memberID).
			Warn("listing waitings by member failed, returning empty list")
		return []EntrySummary{}, nil
	}

	result := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		position, err := PositionOf(ctx, m.store, e)
		if err != nil {
			m.logger.WithContext(ctx).WithError(err).WithField("member_id", memberID).
				Warn("ranking member waitings failed, returning empty list")
			return []EntrySummary{}, nil
		}
		result = append(result, e.summary(position))
	}
	return result, nil
}

// ListForResource возвращает очередь слота в порядке позиций.
// Позиции берутся из индекса в одном упорядоченном запросе, поэтому согласованы между собой.
func (m *Manager) ListForResource(ctx context.Context, scheduleID int64) ([]EntrySummary, error) {
	if err := validateRef("schedule_id", scheduleID); err != nil {
		return nil, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	entries, err := m.store.ListBySchedule(ctx, scheduleID)
	if err != nil {
		m.logger.WithContext(ctx).WithError(err).WithField("schedule_id", scheduleID).
			Warn("listing waitings by schedule failed, returning empty list")
		return []EntrySummary{}, nil
	}

	result := make([]EntrySummary, 0, len(entries))
	for i, e := range entries {
		result = append(result, e.summary(i+1))
	}
	return result, nil
}

// PeekHead возвращает первую запись очереди слота или NotFoundError, если очередь пуста.
// Результат может устареть сразу после чтения, см. IsHead.
func (m *Manager) PeekHead(ctx context.Context, scheduleID int64) (EntrySummary, error) {
	if err := validateRef("schedule_id", scheduleID); err != nil {
		return EntrySummary{}, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	head, err := m.store.HeadOfLine(ctx, scheduleID)
	if err != nil {
		return EntrySummary{}, err
	}
	return head.summary(1), nil
}

func validateRef(field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: field, Reason: "must be a positive identifier"}
	}
	return nil
}
