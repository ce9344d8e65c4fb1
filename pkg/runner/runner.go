// Package runner schedules probe units under bounded concurrency.
//
// The scheduler takes the cross product of the address set and port set,
// launches units eagerly in address-major, port-minor order, and bounds
// in-flight work with a channel semaphore. Results stream to a callback
// in completion order, which is unrelated to launch order.
package runner

import (
	"context"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/webfigscan/webfigscan/pkg/probe"
)

// ProbeFunc drives one (address, port) unit to a terminal result.
type ProbeFunc func(ctx context.Context, addr netip.Addr, port uint16) probe.Result

// Stats tracks execution counters. All fields are updated atomically
// and may be read while the scan is running.
type Stats struct {
	Total     int64
	Completed int64
	Matched   int64
	Open      int64
	StartTime time.Time

	inFlight    int32
	maxInFlight int32
}

// Progress returns completion percentage (0-100).
func (s *Stats) Progress() float64 {
	total := atomic.LoadInt64(&s.Total)
	if total == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.Completed)) / float64(total) * 100
}

// UnitsPerSecond returns the completion rate since the scan started.
func (s *Stats) UnitsPerSecond() float64 {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.Completed)) / elapsed
}

// MaxInFlight returns the high-water mark of concurrently in-flight
// units. Never exceeds the configured concurrency.
func (s *Stats) MaxInFlight() int {
	return int(atomic.LoadInt32(&s.maxInFlight))
}

func (s *Stats) enter() {
	n := atomic.AddInt32(&s.inFlight, 1)
	for {
		high := atomic.LoadInt32(&s.maxInFlight)
		if n <= high || atomic.CompareAndSwapInt32(&s.maxInFlight, high, n) {
			return
		}
	}
}

func (s *Stats) leave() {
	atomic.AddInt32(&s.inFlight, -1)
}

// Scheduler executes the address × port cross product with bounded
// concurrency. The address and port slices are read-only snapshots,
// safely shared by every unit.
type Scheduler struct {
	// Concurrency caps in-flight units (the admission-control
	// capacity C).
	Concurrency int

	// UnitTimeout bounds one unit's full attempt sequence. Zero means
	// the ProbeFunc's own per-attempt timeouts are the only bound.
	UnitTimeout time.Duration

	// OnResult receives every terminal result as it completes. Called
	// concurrently from worker goroutines; the callback synchronizes
	// its own output.
	OnResult func(probe.Result)

	// Stats is populated by Run.
	Stats Stats
}

// New creates a scheduler with the given admission capacity.
func New(concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scheduler{Concurrency: concurrency}
}

// Run executes every unit. It blocks until all launched units have
// completed. Context cancellation stops launching new units; in-flight
// units drain. A unit's failure never cancels siblings and is never
// retried.
func (s *Scheduler) Run(ctx context.Context, addrs []netip.Addr, ports []uint16, fn ProbeFunc) {
	s.Stats = Stats{
		Total:     int64(len(addrs)) * int64(len(ports)),
		StartTime: time.Now(),
	}
	if s.Stats.Total == 0 {
		return
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	// Admission control: the launcher blocks on a slot before spawning,
	// so at most C goroutines exist regardless of the unit count.
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

launch:
	for _, addr := range addrs {
		for _, port := range ports {
			select {
			case <-ctx.Done():
				break launch
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(a netip.Addr, p uint16) {
				defer wg.Done()
				defer func() { <-sem }() // release slot on every path

				s.Stats.enter()
				defer s.Stats.leave()

				unitCtx := ctx
				if s.UnitTimeout > 0 {
					var cancel context.CancelFunc
					unitCtx, cancel = context.WithTimeout(ctx, s.UnitTimeout)
					defer cancel()
				}

				result := fn(unitCtx, a, p)

				atomic.AddInt64(&s.Stats.Completed, 1)
				switch result.Kind {
				case probe.KindMatch:
					atomic.AddInt64(&s.Stats.Matched, 1)
				case probe.KindOpen:
					atomic.AddInt64(&s.Stats.Open, 1)
				}

				if s.OnResult != nil {
					s.OnResult(result)
				}
			}(addr, port)
		}
	}

	wg.Wait()
}
