package payments

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
)

type stubGateway struct {
	err   error
	delay time.Duration
}

func (g *stubGateway) Charge(ctx context.Context, _ kernel.UUID, _ kernel.Money) error {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return g.err
}

func awaitOutcome(t *testing.T, task *Task) Outcome {
	t.Helper()
	select {
	case outcome := <-task.Done():
		return outcome
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for charge outcome")
		return Outcome{}
	}
}

func Test_Processor_Start_ReportsSuccess(t *testing.T) {
	processor := NewProcessor(&stubGateway{}, time.Second, slog.Default())
	orderID := kernel.NewUUID()
	amount, err := kernel.NewMoney(25600)
	require.NoError(t, err)

	outcome := awaitOutcome(t, processor.Start(orderID, amount))

	assert.NoError(t, outcome.Err)
	assert.True(t, orderID.IsEqual(outcome.OrderID))
}

func Test_Processor_Start_ReportsGatewayFailure(t *testing.T) {
	declined := errors.New("card declined")
	processor := NewProcessor(&stubGateway{err: declined}, time.Second, slog.Default())

	outcome := awaitOutcome(t, processor.Start(kernel.NewUUID(), kernel.ZeroMoney()))

	assert.ErrorIs(t, outcome.Err, declined)
}

func Test_Processor_Start_TimesOutSlowGateway(t *testing.T) {
	processor := NewProcessor(&stubGateway{delay: time.Minute}, 20*time.Millisecond, slog.Default())

	outcome := awaitOutcome(t, processor.Start(kernel.NewUUID(), kernel.ZeroMoney()))

	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
}

func Test_Task_Done_ClosesAfterOutcome(t *testing.T) {
	processor := NewProcessor(&stubGateway{}, time.Second, slog.Default())
	task := processor.Start(kernel.NewUUID(), kernel.ZeroMoney())

	awaitOutcome(t, task)

	_, ok := <-task.Done()
	assert.False(t, ok, "Done must be closed after the outcome")
}
