package ports

import "context"

// IPResolver — абстракция сервиса определения внешнего IP.
// Возвращает сырой текст ответа; разбор и валидация — на стороне вызывающего.
type IPResolver interface {
	Resolve(ctx context.Context) (string, error)
}
