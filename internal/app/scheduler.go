package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/config"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ctxmeta"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/logger"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/metrics"
)

// Scheduler запускает циклы сверки строго последовательно: следующий цикл
// начинается только после полного завершения предыдущего (успех или ошибка).
// Это единственная граница сдерживания ошибок: любая ошибка цикла
// логируется и глотается, процесс продолжает жить.
type Scheduler struct {
	monitor  MonitorUseCase
	log      *logger.Logger
	interval time.Duration
	once     bool
}

func NewScheduler(monitor MonitorUseCase, log *logger.Logger, cfg *config.Monitor) *Scheduler {
	return &Scheduler{
		monitor:  monitor,
		log:      log,
		interval: cfg.CheckInterval,
		once:     cfg.Once,
	}
}

// Run выполняет первый цикл сразу, затем — каждые interval до отмены ctx.
// В режиме once возвращает nil после первого цикла независимо от его
// результата: ошибки цикла — не ошибки процесса.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		cycleCtx := ctxmeta.WithCycleID(ctx, uuid.NewString())
		s.report(cycleCtx, s.monitor.Reconcile(cycleCtx))

		if s.once {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

func (s *Scheduler) report(ctx context.Context, out domain.Outcome) {
	metrics.CyclesTotal.WithLabelValues(out.Kind.String()).Inc()

	switch out.Kind {
	case domain.OutcomeUnchanged:
		s.log.DebugContext(ctx, "external IP unchanged")
	case domain.OutcomeAlreadyPresent:
		s.log.InfoContext(ctx, "prefix list already current", "cidr", out.CIDR)
	case domain.OutcomeUpdated:
		metrics.EntriesReplacedTotal.Add(float64(out.Removed))
		metrics.LastUpdateTimestamp.SetToCurrentTime()
		s.log.InfoContext(ctx, "prefix list updated", "cidr", out.CIDR, "removed", out.Removed)
	case domain.OutcomeFailed:
		// Конфликт версий — штатная ситуация (кто-то правил список
		// параллельно), следующий тик всё починит. Логируем мягче.
		if errors.Is(out.Err, domain.ErrVersionConflict) {
			s.log.WarnContext(ctx, "reconcile cycle failed", "error", out.Err)
		} else {
			s.log.ErrorContext(ctx, "reconcile cycle failed", "error", out.Err)
		}
	}
}
