package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Driver paces a Simulator against the wall clock. The Simulator itself has no timer;
// the Driver only calls Tick, so pausing is simply the Driver skipping ticks.
type Driver struct {
	sim      *Simulator
	interval time.Duration

	// StopWhenDrained stops the run once every process has completed and no
	// new arrivals are possible.
	StopWhenDrained bool
}

// NewDriver creates a Driver ticking every interval. A zero interval ticks as fast as possible.
func NewDriver(sim *Simulator, interval time.Duration) *Driver {
	return &Driver{sim: sim, interval: interval}
}

// NewConfiguredDriver creates a Driver paced at the Simulator's configured tick speed.
func NewConfiguredDriver(sim *Simulator) *Driver {
	return NewDriver(sim, time.Duration(sim.Config().CPU.TickSpeedMs)*time.Millisecond)
}

// Run ticks the Simulator until ctx is done, maxTicks ticks have been performed
// (0 means no limit), or the Simulator is stopped. While the Simulator is Paused
// the Driver waits without ticking. Returns the number of ticks performed and
// ctx.Err() if the context ended the run.
func (d *Driver) Run(ctx context.Context, maxTicks int64) (int64, error) {
	var ticker *time.Ticker
	if d.interval > 0 {
		ticker = time.NewTicker(d.interval)
		defer ticker.Stop()
	}

	var ticks int64
	for maxTicks == 0 || ticks < maxTicks {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ticks, ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return ticks, err
		}

		switch d.sim.State() {
		case RunStopped:
			return ticks, nil
		case RunPaused:
			if ticker == nil {
				// Nothing to pace against; yield until resumed or cancelled.
				select {
				case <-ctx.Done():
					return ticks, ctx.Err()
				case <-time.After(time.Millisecond):
				}
			}
			continue
		}

		if d.sim.Tick() {
			ticks++
		}
		if d.StopWhenDrained && d.drained() {
			logrus.Debugf("[tick %07d] all processes completed, stopping", d.sim.Clock())
			d.sim.Stop()
			return ticks, nil
		}
	}
	return ticks, nil
}

func (d *Driver) drained() bool {
	return d.sim.Config().Processes.PercentArrivalNewProcess <= 0 && d.sim.Drained()
}
