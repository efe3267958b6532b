package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strizhka/barbershop-booking/pkg/dbmetrics"
)

type stubTx struct {
	commits   *int
	rollbacks *int
}

func (s stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (s stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (s stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (s stubTx) Commit() error {
	*s.commits++
	return nil
}

func (s stubTx) Rollback() error {
	*s.rollbacks++
	return nil
}

type stubBeginner struct {
	begins    int
	commits   int
	rollbacks int
}

func (s *stubBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	s.begins++
	return stubTx{commits: &s.commits, rollbacks: &s.rollbacks}, nil
}

// Конфликт сериализации в том виде, в каком он приходит из репозитория:
// *pq.Error, обернутая сентинелами через %w
func wrappedSerializationFailure() error {
	pqErr := &pq.Error{Code: pgSerializationFailure}
	return fmt.Errorf("internal error: failed to get bookings: %w",
		fmt.Errorf("%w: %w", errors.New("failed to execute query"), pqErr))
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	t.Parallel()

	beginner := &stubBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return wrappedSerializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, beginner.begins)
	assert.Equal(t, 1, beginner.commits)
	assert.Equal(t, 2, beginner.rollbacks)
}

func TestDoSerializable_GivesUpAfterRetries(t *testing.T) {
	t.Parallel()

	beginner := &stubBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return wrappedSerializationFailure()
	})

	require.Error(t, err)
	assert.Equal(t, serializableRetries+1, attempts)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	t.Parallel()

	beginner := &stubBeginner{}
	m := NewTransactionManager(beginner)

	boom := errors.New("boom")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 0, beginner.commits)
	assert.Equal(t, 1, beginner.rollbacks)
}

func TestIsSerializationFailure(t *testing.T) {
	t.Parallel()

	assert.True(t, isSerializationFailure(&pq.Error{Code: pgSerializationFailure}))
	assert.True(t, isSerializationFailure(wrappedSerializationFailure()))

	assert.False(t, isSerializationFailure(nil))
	assert.False(t, isSerializationFailure(errors.New("boom")))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}
