package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	model "refashion/internal/models"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name      string
	ReadRatio int
	MoveRatio int
	Burst     bool // if true, no delay between ops
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)))]
	p99 = latencies[int(0.99*float64(len(latencies)))]
	return
}

// Benchmark_Load_Session runs multiple scenarios
func Benchmark_Load_Session(b *testing.B) {
	scenarios := []LoadScenario{
		{"WriteHeavy", 0, 2, false},
		{"Mixed-Workload", 5, 2, false},
		{"ReadHeavy", 9, 0, false},
		{"Peak-Burst", 3, 3, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	session := newSession(b)
	ctx := context.Background()

	var totalOps, adds, moves, failedMoves, totalReads int64
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(time.Now().Nanosecond())))

		for pb.Next() {
			opType := rnd.Intn(10)

			opStart := time.Now()
			switch {
			case opType < s.ReadRatio:
				_ = session.BagSnapshot()
				_ = session.Progress()
				atomic.AddInt64(&totalReads, 1)
			case opType < s.ReadRatio+s.MoveRatio:
				resell := session.BagSnapshot().Bags.Resell
				if len(resell) == 0 {
					atomic.AddInt64(&failedMoves, 1)
					break
				}
				item := resell[rnd.Intn(len(resell))]
				if _, moved, err := session.MoveItem(ctx, model.CategoryResell, model.CategoryDonation, item.ID); err != nil || !moved {
					atomic.AddInt64(&failedMoves, 1)
				} else {
					atomic.AddInt64(&moves, 1)
				}
			default:
				category := model.Categories[rnd.Intn(len(model.Categories))]
				item := model.BagItem{FileName: fmt.Sprintf("load_%d.png", rnd.Int())}
				if _, err := session.AddToBag(ctx, category, item); err != nil {
					b.Logf("ignored add error: %v", err)
				} else {
					atomic.AddInt64(&adds, 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	counts := session.BagSnapshot().Counts
	b.Logf(
		"Scenario: %s | Total Ops: %d | Adds: %d | Moves: %d | Failed Moves: %d | Reads: %d | Bag Total: %d | Points: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, totalOps, adds, moves, failedMoves, totalReads, counts.Total, session.RewardsSnapshot().Points, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	if counts.Total != int(adds) {
		b.Fatalf("bag total %d does not match %d successful adds", counts.Total, adds)
	}
}
