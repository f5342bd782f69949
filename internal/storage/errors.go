package storage

import (
	stderrors "errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"roomescape/internal/queue"
)

const (
	pgForeignKeyViolation    = "23503"
	mysqlForeignKeyViolation = 1452
)

// foreignKeyTarget определяет, на какую таблицу ссылалась нарушенная ссылка.
// ok == false, если err не нарушение внешнего ключа.
func foreignKeyTarget(err error) (kind string, ok bool) {
	var detail string

	var pgErr *pgconn.PgError
	var myErr *mysqldriver.MySQLError
	switch {
	case stderrors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation:
		detail = pgErr.ConstraintName + " " + pgErr.Detail
	case stderrors.As(err, &myErr) && myErr.Number == mysqlForeignKeyViolation:
		detail = myErr.Message
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		detail = err.Error()
	default:
		return "", false
	}

	if strings.Contains(strings.ToLower(detail), "member") {
		return queue.KindMember, true
	}
	return queue.KindSchedule, true
}

// translate приводит ошибку gorm к таксономии очереди.
func translate(err error, op string, kind string, id int64) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return &queue.NotFoundError{Kind: kind, ID: id}
	}
	return &queue.StoreError{Op: op, Err: errors.Wrapf(err, "storage: %s", op)}
}
