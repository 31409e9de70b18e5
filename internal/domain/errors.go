package domain

import "errors"

var (
	// ErrFetchFailed — не удалось получить внешний IP (транспортная ошибка, non-2xx и т.п.).
	ErrFetchFailed = errors.New("external IP fetch failed")
	// ErrInvalidAddress — сервис определения IP вернул не IPv4 dotted-quad.
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	// ErrVersionConflict — версия prefix list'а изменилась между чтением и мутацией.
	// Ожидаемая ошибка: следующий цикл повторит сверку с нуля.
	ErrVersionConflict = errors.New("prefix list version conflict")
	// ErrListNotFound — prefix list с заданным ID не существует.
	ErrListNotFound = errors.New("prefix list not found")
)
