package clock

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) (*Driver, *clockwork.FakeClock) {
	t.Helper()
	fake := clockwork.NewFakeClock()
	driver := NewDriver(fake, time.Second, slog.Default())
	t.Cleanup(driver.Stop)
	return driver, fake
}

func waitForTicker(t *testing.T, fake *clockwork.FakeClock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fake.BlockUntilContext(ctx, 1))
}

func receive(t *testing.T, driver *Driver) TickMsg {
	t.Helper()
	select {
	case tick := <-driver.Ticks():
		return tick
	case <-time.After(time.Second):
		t.Fatal("expected a tick")
		return TickMsg{}
	}
}

func assertNoTick(t *testing.T, driver *Driver) {
	t.Helper()
	select {
	case tick := <-driver.Ticks():
		t.Fatalf("unexpected tick: %+v", tick)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNewDriver_Defaults(t *testing.T) {
	driver := NewDriver(nil, 0, nil)

	assert.Equal(t, DefaultPeriod, driver.period)
	assert.NotNil(t, driver.clock)
	assert.False(t, driver.Running())
}

func TestDriver_StartDeliversTicks(t *testing.T) {
	driver, fake := newTestDriver(t)

	generation, started := driver.Start()
	require.True(t, started)
	assert.Equal(t, uint64(1), generation)
	waitForTicker(t, fake)

	fake.Advance(time.Second)
	tick := receive(t, driver)
	assert.Equal(t, generation, tick.Generation)

	fake.Advance(time.Second)
	tick = receive(t, driver)
	assert.Equal(t, generation, tick.Generation)
}

func TestDriver_DoubleStartRegistersOnce(t *testing.T) {
	driver, fake := newTestDriver(t)

	first, started := driver.Start()
	require.True(t, started)
	second, started := driver.Start()

	assert.False(t, started)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, driver.Registrations())

	waitForTicker(t, fake)
	fake.Advance(time.Second)
	receive(t, driver)
	assertNoTick(t, driver)
}

func TestDriver_StopHaltsTicks(t *testing.T) {
	driver, fake := newTestDriver(t)
	driver.Start()
	waitForTicker(t, fake)

	driver.Stop()
	assert.False(t, driver.Running())

	fake.Advance(3 * time.Second)
	assertNoTick(t, driver)
}

func TestDriver_RestartBumpsGeneration(t *testing.T) {
	driver, fake := newTestDriver(t)

	first, _ := driver.Start()
	driver.Stop()
	second, started := driver.Start()

	require.True(t, started)
	assert.Equal(t, first+1, second)
	assert.Equal(t, 2, driver.Registrations())

	waitForTicker(t, fake)
	fake.Advance(time.Second)
	assert.Equal(t, second, receive(t, driver).Generation)
}

func TestDriver_StopWhenStoppedIsNoop(t *testing.T) {
	driver, _ := newTestDriver(t)

	assert.NotPanics(t, func() {
		driver.Stop()
		driver.Stop()
	})
	assert.Equal(t, 0, driver.Registrations())
}

func TestDriver_Listen(t *testing.T) {
	driver, fake := newTestDriver(t)
	generation, _ := driver.Start()
	waitForTicker(t, fake)

	fake.Advance(time.Second)
	msg := driver.Listen()()

	tick, ok := msg.(TickMsg)
	require.True(t, ok, "expected TickMsg, got %T", msg)
	assert.Equal(t, generation, tick.Generation)
}
