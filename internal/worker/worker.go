package worker

import (
	"context"
)

// Worker - фоновый процесс с собственным жизненным циклом.
// Start блокирует до остановки; Stop сигнализирует о завершении и
// безопасен для повторных вызовов.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error

	// Name возвращает имя воркера для логов и диагностики
	Name() string
}
