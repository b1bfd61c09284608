package checkers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPingChecker(t *testing.T) {
	ok := NewPingChecker("db", func(context.Context) error { return nil }, 0)
	assert.Equal(t, "db", ok.Name())
	assert.NoError(t, ok.Check(context.Background()))

	boom := errors.New("boom")
	failing := NewPingChecker("db", func(context.Context) error { return boom }, 0)
	assert.ErrorIs(t, failing.Check(context.Background()), boom)
}

func TestPingCheckerTimeout(t *testing.T) {
	slow := NewPingChecker("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 10*time.Millisecond)

	err := slow.Check(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
