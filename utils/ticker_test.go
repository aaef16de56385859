package utils

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"go.viam.com/rotation/logging"
)

func TestSlowLogger(t *testing.T) {
	logger, observed := logging.NewObservedTestLogger(t)
	clk := clock.NewMock()

	stop := SlowLogger(context.Background(), clk, "still running", "size", "100000", logger)
	// nothing is logged before the first tick
	clk.Add(time.Second)
	test.That(t, observed.FilterMessage("still running").Len(), test.ShouldEqual, 0)

	clk.Add(time.Second)
	waitForLogs(t, observed.FilterMessage("still running").Len, 1)
	clk.Add(5 * time.Second)
	waitForLogs(t, observed.FilterMessage("still running").Len, 2)
	stop()

	entries := observed.FilterMessage("still running").All()
	test.That(t, entries[0].ContextMap()["size"], test.ShouldEqual, "100000")
	test.That(t, entries[0].ContextMap()["time_elapsed"], test.ShouldEqual, "2s")

	// stopped loggers stay quiet
	logged := observed.FilterMessage("still running").Len()
	clk.Add(time.Minute)
	test.That(t, observed.FilterMessage("still running").Len(), test.ShouldEqual, logged)
}

func TestSlowLoggerStopsWithContext(t *testing.T) {
	logger, observed := logging.NewObservedTestLogger(t)
	clk := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())

	stop := SlowLogger(ctx, clk, "still running", "size", "1", logger)
	cancel()
	stop()
	clk.Add(time.Minute)
	test.That(t, observed.Len(), test.ShouldEqual, 0)
}

func waitForLogs(t *testing.T, count func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for count() < want && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.That(t, count(), test.ShouldBeGreaterThanOrEqualTo, want)
}
