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

	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	opts   []*sql.TxOptions
	txs    []*fakeTx
	failOn bool
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.failOn {
		return nil, errors.New("connection refused")
	}
	tx := &fakeTx{}
	b.opts = append(b.opts, opts)
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	sentinel := errors.New("slot already booked")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDo_BeginFails(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{failOn: true})

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)
}

func serializationFailure() error {
	return fmt.Errorf("slot.repository: failed to scan row: GetByID: %w",
		&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return serializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
	assert.True(t, db.txs[1].committed)
}

func TestDoSerializable_RetriedAttemptSeesBusinessError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	alreadyBooked := errors.New("slot already booked")

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return serializationFailure()
		}
		return alreadyBooked
	})

	assert.ErrorIs(t, err, alreadyBooked)
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return serializationFailure()
	})

	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, MaxSerializationRetries+1, calls)
	assert.Len(t, db.txs, MaxSerializationRetries+1)
}

func TestDoSerializable_NoRetryForOtherErrors(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "23505", Message: "duplicate key"}
	})

	assert.Error(t, err)
	assert.False(t, IsSerializationFailure(err))
	assert.Equal(t, 1, calls)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("%w: %w", ErrCommitTx, &pq.Error{Code: "40001"})))
	assert.False(t, IsSerializationFailure(fmt.Errorf("flattened: %v", &pq.Error{Code: "40001"})))
	assert.False(t, IsSerializationFailure(nil))
}
