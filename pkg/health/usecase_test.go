package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, NewService().Ready(ctx))
	assert.NoError(t, NewService(stubChecker{name: "postgres"}, nil).Ready(ctx))

	down := errors.New("connection refused")
	err := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: down}).Ready(ctx)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "redis")
}

func TestReport(t *testing.T) {
	svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: errors.New("timeout")})

	assert.Equal(t, []Status{
		{Name: "postgres", OK: true},
		{Name: "redis", OK: false, Error: "timeout"},
	}, svc.Report(context.Background()))
}
