package queue

import (
	"errors"
	"fmt"
)

// KindQueueHead означает, что у слота нет ни одной записи. ID в ошибке при этом равен id слота.
const (
	KindWaiting   = "waiting"
	KindSchedule  = "schedule"
	KindMember    = "member"
	KindQueueHead = "queue head of schedule"
)

// NotFoundError означает, что запись, слот или участник с таким id не найдены.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ValidationError описывает некорректную ссылку во входных данных.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateError возвращается Join, когда повторная запись запрещена настройкой.
type DuplicateError struct {
	ScheduleID int64
	MemberID   int64
	ExistingID int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("member %d already waits for schedule %d (entry %d)", e.MemberID, e.ScheduleID, e.ExistingID)
}

// NotOwnerError возвращается при попытке отменить чужую запись.
type NotOwnerError struct {
	EntryID  int64
	MemberID int64
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("entry %d does not belong to member %d", e.EntryID, e.MemberID)
}

// StoreError оборачивает сбой хранилища. Повторы остаются на усмотрение вызывающей стороны.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NotFoundKind возвращает тип ненайденной сущности или пустую строку.
func NotFoundKind(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Kind
	}
	return ""
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsDuplicate(err error) bool {
	var d *DuplicateError
	return errors.As(err, &d)
}

func IsNotOwner(err error) bool {
	var o *NotOwnerError
	return errors.As(err, &o)
}

func IsStore(err error) bool {
	var s *StoreError
	return errors.As(err, &s)
}
