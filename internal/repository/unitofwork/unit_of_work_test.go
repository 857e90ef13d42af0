package unitofwork

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubUoW records transaction calls; repository accessors are unused.
type stubUoW struct {
	UnitOfWork
	calls    []string
	beginErr error
}

func (s *stubUoW) Begin(ctx context.Context) error {
	s.calls = append(s.calls, "begin")
	return s.beginErr
}

func (s *stubUoW) Commit() error {
	s.calls = append(s.calls, "commit")
	return nil
}

func (s *stubUoW) Rollback() error {
	s.calls = append(s.calls, "rollback")
	return nil
}

func TestInTransaction(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		beginErr  error
		fnErr     error
		wantErr   error
		wantCalls []string
	}{
		{name: "commits on success", wantCalls: []string{"begin", "fn", "commit"}},
		{name: "rolls back on error", fnErr: boom, wantErr: boom, wantCalls: []string{"begin", "fn", "rollback"}},
		{name: "begin failure skips fn", beginErr: boom, wantErr: boom, wantCalls: []string{"begin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := &stubUoW{beginErr: tt.beginErr}
			err := InTransaction(context.Background(), uow, func(tx UnitOfWork) error {
				uow.calls = append(uow.calls, "fn")
				return tt.fnErr
			})

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, uow.calls)
		})
	}
}
