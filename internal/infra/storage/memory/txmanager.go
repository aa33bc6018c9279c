package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager выполняет транзакции над Store строго по одной.
// При ошибке fn содержимое хранилища откатывается к состоянию до начала транзакции.
type TxManager struct {
	mu    sync.Mutex
	store *Store
}

// NewTxManager создает менеджер транзакций для хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов уже держит блокировку
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.store.snapshot()

	committed := false
	defer func() {
		if !committed {
			m.store.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, m)); err != nil {
		return err
	}

	committed = true
	return nil
}
