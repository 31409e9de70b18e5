package domain

import "fmt"

// RemoteEntry представляет одну запись managed prefix list'а.
// Записи, у которых Description совпадает с настроенным тегом, считаются
// принадлежащими этому сервису; остальные записи мы никогда не трогаем.
type RemoteEntry struct {
	CIDR        string
	Description string
}

// OutcomeKind представляет вид результата одного цикла сверки.
type OutcomeKind int

const (
	OutcomeFailed OutcomeKind = iota
	OutcomeUnchanged
	OutcomeAlreadyPresent
	OutcomeUpdated
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeAlreadyPresent:
		return "already_present"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Outcome — результат одного вызова Reconcile.
// Создаётся заново на каждый цикл и нигде не сохраняется.
type Outcome struct {
	Kind OutcomeKind
	// CIDR, который применялся (или уже был в списке). Пуст для Unchanged и Failed.
	CIDR string
	// Количество удалённых устаревших записей (заполняется для Updated).
	Removed int
	// Ошибка цикла (заполняется для Failed).
	Err error
}

func Unchanged() Outcome {
	return Outcome{Kind: OutcomeUnchanged}
}

func AlreadyPresent(cidr string) Outcome {
	return Outcome{Kind: OutcomeAlreadyPresent, CIDR: cidr}
}

func Updated(removed int, cidr string) Outcome {
	return Outcome{Kind: OutcomeUpdated, CIDR: cidr, Removed: removed}
}

func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}
