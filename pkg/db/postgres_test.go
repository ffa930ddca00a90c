// pkg/db/postgres_test.go
package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "broadcast", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=broadcast sslmode=disable", cfg.DSN())
}

type mockTx struct {
	mock.Mock
}

func (m *mockTx) Commit() error   { return m.Called().Error(0) }
func (m *mockTx) Rollback() error { return m.Called().Error(0) }

func TestRollbackTx(t *testing.T) {
	t.Run("AlreadyDone", func(t *testing.T) {
		tx := new(mockTx)
		tx.On("Rollback").Return(sql.ErrTxDone).Once()
		RollbackTx(tx)
		tx.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		tx := new(mockTx)
		tx.On("Rollback").Return(errors.New("connection reset")).Once()
		assert.NotPanics(t, func() { RollbackTx(tx) })
		tx.AssertExpectations(t)
	})
}
