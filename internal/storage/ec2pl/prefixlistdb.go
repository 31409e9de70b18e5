package ec2pl

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ports"
)

// Проверка реализации интерфейса PrefixListRepo на этапе компиляции.
var _ ports.PrefixListRepo = (*PrefixListDB)(nil)

// EC2API — подмножество клиента EC2, которое мы реально используем.
// Интерфейс нужен для подмены клиента фейком в тестах.
type EC2API interface {
	DescribeManagedPrefixLists(
		ctx context.Context,
		in *ec2.DescribeManagedPrefixListsInput,
		opts ...func(*ec2.Options),
	) (*ec2.DescribeManagedPrefixListsOutput, error)
	GetManagedPrefixListEntries(
		ctx context.Context,
		in *ec2.GetManagedPrefixListEntriesInput,
		opts ...func(*ec2.Options),
	) (*ec2.GetManagedPrefixListEntriesOutput, error)
	ModifyManagedPrefixList(
		ctx context.Context,
		in *ec2.ModifyManagedPrefixListInput,
		opts ...func(*ec2.Options),
	) (*ec2.ModifyManagedPrefixListOutput, error)
}

// PrefixListDB реализует ports.PrefixListRepo поверх EC2 managed prefix lists.
type PrefixListDB struct {
	api EC2API
}

// New создаёт репозиторий поверх стандартной цепочки настроек AWS SDK.
// Если region не пуст — он перекрывает регион из окружения/профиля.
// Ошибка отсюда фатальна: без валидных кредов запускаться нет смысла.
func New(ctx context.Context, region string) (*PrefixListDB, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithAPI(ec2.NewFromConfig(awsCfg)), nil
}

// NewWithAPI создаёт репозиторий поверх готового клиента (для тестов).
func NewWithAPI(api EC2API) *PrefixListDB {
	return &PrefixListDB{api: api}
}

func (p *PrefixListDB) GetVersion(ctx context.Context, listID string) (int64, error) {
	if listID == "" {
		return 0, ErrEmptyListID
	}

	out, err := p.api.DescribeManagedPrefixLists(ctx, &ec2.DescribeManagedPrefixListsInput{
		PrefixListIds: []string{listID},
	})
	if err != nil {
		return 0, classifyErr("describe prefix list", err)
	}

	if len(out.PrefixLists) == 0 {
		return 0, fmt.Errorf("describe prefix list %s: %w", listID, domain.ErrListNotFound)
	}

	return aws.ToInt64(out.PrefixLists[0].Version), nil
}

func (p *PrefixListDB) GetOwnedEntries(ctx context.Context, listID, tag string) ([]domain.RemoteEntry, error) {
	if listID == "" {
		return nil, ErrEmptyListID
	}

	var (
		owned     []domain.RemoteEntry
		nextToken *string
	)

	// API отдаёт записи страницами; идём по NextToken до конца.
	for {
		out, err := p.api.GetManagedPrefixListEntries(ctx, &ec2.GetManagedPrefixListEntriesInput{
			PrefixListId: aws.String(listID),
			NextToken:    nextToken,
		})
		if err != nil {
			return nil, classifyErr("get prefix list entries", err)
		}

		for _, e := range out.Entries {
			// Чужие записи (другое description) не покидают пределы этого слоя.
			if aws.ToString(e.Description) != tag {
				continue
			}
			owned = append(owned, domain.RemoteEntry{
				CIDR:        aws.ToString(e.Cidr),
				Description: tag,
			})
		}

		nextToken = out.NextToken
		if nextToken == nil {
			break
		}
	}

	return owned, nil
}

func (p *PrefixListDB) ReplaceEntries(
	ctx context.Context,
	listID string,
	expectedVersion int64,
	removals []string,
	additions []domain.RemoteEntry,
) (int64, error) {
	if listID == "" {
		return 0, ErrEmptyListID
	}

	in := &ec2.ModifyManagedPrefixListInput{
		PrefixListId: aws.String(listID),
		// Guard оптимистичной блокировки: при устаревшей версии
		// API отклонит запрос с PrefixListVersionMismatch.
		CurrentVersion: aws.Int64(expectedVersion),
	}

	for _, cidr := range removals {
		in.RemoveEntries = append(in.RemoveEntries, ec2types.RemovePrefixListEntry{
			Cidr: aws.String(cidr),
		})
	}
	for _, e := range additions {
		in.AddEntries = append(in.AddEntries, ec2types.AddPrefixListEntry{
			Cidr:        aws.String(e.CIDR),
			Description: aws.String(e.Description),
		})
	}

	out, err := p.api.ModifyManagedPrefixList(ctx, in)
	if err != nil {
		return 0, classifyErr("modify prefix list", err)
	}

	if out.PrefixList == nil {
		return 0, nil
	}
	return aws.ToInt64(out.PrefixList.Version), nil
}
