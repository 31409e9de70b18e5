package app

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/config"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ports"
)

type MonitorUseCase interface {
	Reconcile(ctx context.Context) domain.Outcome
	CurrentAddress() (netip.Addr, bool)
}

// Проверка реализации интерфейса MonitorUseCase на этапе компиляции.
var _ MonitorUseCase = (*MonitorService)(nil)

// MonitorService — ядро сервиса: один цикл сверки внешнего IP с prefix list'ом.
// Последний известный адрес живёт только в памяти процесса, поэтому
// первый цикл после старта всегда считается изменением.
type MonitorService struct {
	resolver ports.IPResolver
	repo     ports.PrefixListRepo

	listID     string
	entryTag   string
	cidrSuffix int

	// Последний успешно применённый адрес. Zero-значение — ещё не наблюдали.
	// Доступ строго последовательный: Scheduler не запускает циклы параллельно.
	lastKnown netip.Addr
}

func NewMonitorService(
	resolver ports.IPResolver,
	repo ports.PrefixListRepo,
	cfg *config.Monitor,
) *MonitorService {
	return &MonitorService{
		resolver:   resolver,
		repo:       repo,
		listID:     cfg.PrefixListID,
		entryTag:   cfg.EntryDescription,
		cidrSuffix: cfg.CIDRSuffix,
	}
}

// Reconcile выполняет один цикл сверки.
//
// Порядок шагов принципиален:
//  1. Получаем и валидируем внешний IP. Любая ошибка здесь завершает цикл
//     без единого обращения к AWS и без изменения lastKnown.
//  2. Если адрес не изменился — выходим сразу (ноль RPC; частый случай).
//  3. Читаем "свои" записи списка (description == entryTag). Если нужный
//     CIDR уже там — обновляем lastKnown без мутации (после рестарта
//     список обычно уже актуален).
//  4. Иначе читаем версию списка и одним атомарным запросом удаляем все
//     устаревшие свои записи и добавляем новую, под guard'ом версии.
//     Конкурентная правка списка кем-то ещё превращается в
//     ErrVersionConflict, lastKnown не меняется, и следующий цикл
//     повторит всё с нуля.
func (s *MonitorService) Reconcile(ctx context.Context) domain.Outcome {
	raw, err := s.resolver.Resolve(ctx)
	if err != nil {
		return domain.Failed(err)
	}

	addr, err := domain.ParseIPv4(raw)
	if err != nil {
		return domain.Failed(err)
	}

	if s.lastKnown.IsValid() && s.lastKnown == addr {
		return domain.Unchanged()
	}

	candidate := domain.FormatCIDR(addr, s.cidrSuffix)

	owned, err := s.repo.GetOwnedEntries(ctx, s.listID, s.entryTag)
	if err != nil {
		return domain.Failed(fmt.Errorf("apply %s: %w", candidate, err))
	}

	// Список уже отражает реальность — мутация не нужна.
	for _, e := range owned {
		if e.CIDR == candidate {
			s.lastKnown = addr
			return domain.AlreadyPresent(candidate)
		}
	}

	version, err := s.repo.GetVersion(ctx, s.listID)
	if err != nil {
		return domain.Failed(fmt.Errorf("apply %s: %w", candidate, err))
	}

	removals := make([]string, 0, len(owned))
	for _, e := range owned {
		if e.CIDR != candidate {
			removals = append(removals, e.CIDR)
		}
	}

	additions := []domain.RemoteEntry{{CIDR: candidate, Description: s.entryTag}}

	if _, err := s.repo.ReplaceEntries(ctx, s.listID, version, removals, additions); err != nil {
		return domain.Failed(fmt.Errorf("apply %s: %w", candidate, err))
	}

	s.lastKnown = addr
	return domain.Updated(len(removals), candidate)
}

// CurrentAddress возвращает последний успешно применённый адрес.
func (s *MonitorService) CurrentAddress() (netip.Addr, bool) {
	return s.lastKnown, s.lastKnown.IsValid()
}
