package ctxmeta

import "context"

type ctxKey int

const cycleIDKey ctxKey = iota

// WithCycleID кладёт идентификатор цикла сверки в context.
func WithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDKey, id)
}

// CycleID достаёт идентификатор цикла из context.
func CycleID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cycleIDKey).(string)
	return id, ok && id != ""
}
