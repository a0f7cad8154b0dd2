package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultShutdownTimeout - сколько ждать завершения воркеров при остановке
const defaultShutdownTimeout = 30 * time.Second

// Manager запускает зарегистрированные воркеры и обеспечивает их
// согласованную остановку с ограничением по времени.
type Manager struct {
	workers []Worker
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
}

// NewManager создает менеджер воркеров
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		timeout: defaultShutdownTimeout,
		logger:  logger,
	}
}

// Register добавляет воркеры в менеджер. Вызывается до Start.
func (m *Manager) Register(workers ...Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range workers {
		m.workers = append(m.workers, w)
		m.logger.Info("Worker registered", zap.String("name", w.Name()))
	}
}

// Start запускает каждый воркер в отдельной горутине. Ошибка Start
// отдельного воркера логируется, но не останавливает остальных.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	m.mu.Unlock()

	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()

			m.logger.Info("Starting worker", zap.String("name", w.Name()))
			if err := w.Start(ctx); err != nil {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
		}(worker)
	}

	return nil
}

// Stop сигнализирует всем воркерам о завершении и ждет их выхода
// не дольше таймаута.
func (m *Manager) Stop() error {
	m.mu.Lock()
	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	m.mu.Unlock()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		if err := worker.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", worker.Name()),
				zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All workers stopped gracefully")
	case <-time.After(m.timeout):
		m.logger.Warn("Workers shutdown timed out, some tasks may not have completed",
			zap.Duration("timeout", m.timeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.timeout)
	}

	return nil
}
