package resolve_drop

import (
	"context"

	resolveDrop "github.com/strizhka/barbershop-booking/internal/usecase/resolve_drop"
)

type ResolveDropUseCase interface {
	Execute(ctx context.Context, req *resolveDrop.Request) (*resolveDrop.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
