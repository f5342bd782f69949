package tasks

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// Purger удаляет записи ожидания на слоты, дата которых раньше cutoff.
type Purger interface {
	PurgeBefore(ctx context.Context, cutoff string) (int64, error)
}

// Planner запускает фоновые cron-задачи обслуживания листа ожидания.
type Planner struct {
	purger  Purger
	logger  *logrus.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewPlanner(purger Purger, logger *logrus.Logger, timeout time.Duration) *Planner {
	return &Planner{
		purger:  purger,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// PurgeExpired удаляет записи на слоты прошедших дней.
// Это то же удаление, что и выход из очереди: отдельного состояния «просрочено» нет.
func (p *Planner) PurgeExpired(ctx context.Context) (int64, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cutoff := p.now().Format(dateLayout)
	n, err := p.purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "purge expired waitings")
	}

	p.logger.WithContext(ctx).WithFields(logrus.Fields{
		"cutoff": cutoff,
		"purged": n,
	}).Info("expired waitings purged")
	return n, nil
}

// Start запускает планировщик с расписанием spec (cron с секундами).
// При пустом spec задача отключена и возвращается nil.
func (p *Planner) Start(ctx context.Context, spec string) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(spec, func() {
		if _, err := p.PurgeExpired(ctx); err != nil {
			p.logger.WithContext(ctx).WithError(err).Error("cron purge failed")
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cron spec %q", spec)
	}

	c.Start()
	p.logger.WithField("spec", spec).Info("cron planner started")
	return c, nil
}
