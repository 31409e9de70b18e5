package ports

import (
	"context"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
)

// PrefixListRepo — абстракция для работы с managed prefix list'ом в облаке.
type PrefixListRepo interface {
	// GetVersion возвращает текущую версию списка.
	GetVersion(ctx context.Context, listID string) (int64, error)
	// GetOwnedEntries возвращает только записи с description == tag.
	GetOwnedEntries(ctx context.Context, listID, tag string) ([]domain.RemoteEntry, error)
	// ReplaceEntries атомарно удаляет removals и добавляет additions,
	// при условии что версия списка всё ещё равна expectedVersion.
	// При устаревшей версии возвращает domain.ErrVersionConflict.
	// Возвращает новую версию списка.
	ReplaceEntries(
		ctx context.Context,
		listID string,
		expectedVersion int64,
		removals []string,
		additions []domain.RemoteEntry,
	) (int64, error)
}
