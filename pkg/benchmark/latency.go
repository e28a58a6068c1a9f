// Package benchmark measures single-block cipher operation latency.
package benchmark

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"tea-go/pkg/log"
	"tea-go/pkg/tea"
)

// LatencyResults holds the results of a latency benchmark
type LatencyResults struct {
	MinLatency    time.Duration
	MaxLatency    time.Duration
	AvgLatency    time.Duration
	MedianLatency time.Duration
	P95Latency    time.Duration
	P99Latency    time.Duration
	OpsRun        int
	OpsDone       int
	TotalTime     time.Duration
	Rounds        int
	Component     Component
}

// Component specifies which operation to benchmark
type Component int

const (
	ComponentAll       Component = iota // Encrypt, decrypt and round-trip in sequence
	ComponentEncrypt                    // Single-block encryption
	ComponentDecrypt                    // Single-block decryption
	ComponentRoundTrip                  // Encrypt followed by decrypt with verification
)

// String returns the name of the component
func (c Component) String() string {
	switch c {
	case ComponentAll:
		return "All Operations"
	case ComponentEncrypt:
		return "Block Encrypt"
	case ComponentDecrypt:
		return "Block Decrypt"
	case ComponentRoundTrip:
		return "Round Trip"
	default:
		return "Unknown"
	}
}

// BenchmarkOptions provides configuration for benchmarks
type BenchmarkOptions struct {
	Component  Component
	Iterations int
	Rounds     int
	Key        []byte
}

// DefaultBenchmarkOptions returns sensible defaults
func DefaultBenchmarkOptions() *BenchmarkOptions {
	return &BenchmarkOptions{
		Component:  ComponentEncrypt,
		Iterations: 100000,
		Rounds:     tea.NumRounds,
		Key:        []byte("benchbenchbench!"),
	}
}

// BenchmarkLatency measures latency for a specific operation
func BenchmarkLatency(opts *BenchmarkOptions) (*LatencyResults, error) {
	switch opts.Component {
	case ComponentEncrypt:
		return benchmarkEncrypt(opts)
	case ComponentDecrypt:
		return benchmarkDecrypt(opts)
	case ComponentRoundTrip:
		return benchmarkRoundTrip(opts)
	default:
		return nil, fmt.Errorf("unknown component: %d", opts.Component)
	}
}

func newCipher(opts *BenchmarkOptions) (*tea.Cipher, error) {
	c, err := tea.NewCipherWithRounds(opts.Key, opts.Rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return c, nil
}

// nthBlock derives a distinct 8-byte block from the iteration counter so
// consecutive operations do not hit identical inputs.
func nthBlock(i int) []byte {
	block := make([]byte, tea.BlockSize)
	binary.BigEndian.PutUint64(block, uint64(i)*0x9E3779B97F4A7C15)
	return block
}

func benchmarkEncrypt(opts *BenchmarkOptions) (*LatencyResults, error) {
	c, err := newCipher(opts)
	if err != nil {
		return nil, err
	}

	var latencies []time.Duration
	startTime := time.Now()

	for i := 0; i < opts.Iterations; i++ {
		block := nthBlock(i)
		opStart := time.Now()
		if _, err := c.Encrypt(block); err != nil {
			log.Printf("Encrypt error at iteration %d: %v", i, err)
			continue
		}
		latencies = append(latencies, time.Since(opStart))
	}

	results := calculateStats(latencies, opts.Iterations, time.Since(startTime))
	results.Rounds = opts.Rounds
	results.Component = opts.Component
	return results, nil
}

func benchmarkDecrypt(opts *BenchmarkOptions) (*LatencyResults, error) {
	c, err := newCipher(opts)
	if err != nil {
		return nil, err
	}

	var latencies []time.Duration
	startTime := time.Now()

	for i := 0; i < opts.Iterations; i++ {
		block := nthBlock(i)
		opStart := time.Now()
		if _, err := c.Decrypt(block); err != nil {
			log.Printf("Decrypt error at iteration %d: %v", i, err)
			continue
		}
		latencies = append(latencies, time.Since(opStart))
	}

	results := calculateStats(latencies, opts.Iterations, time.Since(startTime))
	results.Rounds = opts.Rounds
	results.Component = opts.Component
	return results, nil
}

func benchmarkRoundTrip(opts *BenchmarkOptions) (*LatencyResults, error) {
	c, err := newCipher(opts)
	if err != nil {
		return nil, err
	}

	var latencies []time.Duration
	startTime := time.Now()

	for i := 0; i < opts.Iterations; i++ {
		block := nthBlock(i)
		opStart := time.Now()
		ciphertext, err := c.Encrypt(block)
		if err != nil {
			log.Printf("Encrypt error at iteration %d: %v", i, err)
			continue
		}
		plaintext, err := c.Decrypt(ciphertext)
		if err != nil {
			log.Printf("Decrypt error at iteration %d: %v", i, err)
			continue
		}
		rtt := time.Since(opStart)

		if !bytes.Equal(plaintext, block) {
			log.Printf("Verification failed at iteration %d!", i)
			continue
		}
		latencies = append(latencies, rtt)
	}

	results := calculateStats(latencies, opts.Iterations, time.Since(startTime))
	results.Rounds = opts.Rounds
	results.Component = opts.Component
	return results, nil
}

// calculateStats calculates statistics from latency measurements
func calculateStats(latencies []time.Duration, iterations int, totalTime time.Duration) *LatencyResults {
	if len(latencies) == 0 {
		return &LatencyResults{
			OpsRun:    iterations,
			OpsDone:   0,
			TotalTime: totalTime,
		}
	}

	sortDurations(latencies)

	var sum time.Duration
	min := latencies[0]
	max := latencies[len(latencies)-1]
	for _, latency := range latencies {
		sum += latency
	}

	avg := sum / time.Duration(len(latencies))
	median := latencies[len(latencies)/2]

	p95Index := (len(latencies) * 95) / 100
	p99Index := (len(latencies) * 99) / 100

	return &LatencyResults{
		MinLatency:    min,
		MaxLatency:    max,
		AvgLatency:    avg,
		MedianLatency: median,
		P95Latency:    latencies[p95Index],
		P99Latency:    latencies[p99Index],
		OpsRun:        iterations,
		OpsDone:       len(latencies),
		TotalTime:     totalTime,
	}
}

// sortDurations sorts a slice of durations
func sortDurations(durations []time.Duration) {
	for i := 0; i < len(durations); i++ {
		for j := i + 1; j < len(durations); j++ {
			if durations[i] > durations[j] {
				durations[i], durations[j] = durations[j], durations[i]
			}
		}
	}
}

// RunAllBenchmarks runs benchmarks for all operations with the given options
func RunAllBenchmarks(baseOpts *BenchmarkOptions) ([]*LatencyResults, error) {
	var results []*LatencyResults

	components := []Component{
		ComponentEncrypt,
		ComponentDecrypt,
		ComponentRoundTrip,
	}

	for _, component := range components {
		opts := *baseOpts // Copy options
		opts.Component = component

		log.Printf("Running benchmark for %s...", component)
		result, err := BenchmarkLatency(&opts)
		if err != nil {
			log.Printf("Error benchmarking %s: %v", component, err)
			continue
		}

		results = append(results, result)
		PrintResults(component, result)
	}

	return results, nil
}

// PrintResults prints the results of a latency benchmark
func PrintResults(component Component, results *LatencyResults) {
	fmt.Printf("=== Latency Benchmark: %s ===\n", component)
	fmt.Printf("Rounds: %d\n", results.Rounds)
	fmt.Printf("Operations Run: %d\n", results.OpsRun)
	fmt.Printf("Operations Completed: %d\n", results.OpsDone)
	fmt.Printf("Total Time: %v\n", results.TotalTime)
	fmt.Printf("Min Latency: %v\n", results.MinLatency)
	fmt.Printf("Avg Latency: %v\n", results.AvgLatency)
	fmt.Printf("Median Latency: %v\n", results.MedianLatency)
	fmt.Printf("95th Percentile: %v\n", results.P95Latency)
	fmt.Printf("99th Percentile: %v\n", results.P99Latency)
	fmt.Printf("Max Latency: %v\n", results.MaxLatency)
	fmt.Println("==========================================")
}

// SaveResultsToFile saves benchmark results to a CSV file
func SaveResultsToFile(results []*LatencyResults, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	f.WriteString("Component,Rounds,OpsRun,OpsDone,MinLatency,AvgLatency,MedianLatency,P95Latency,P99Latency,MaxLatency,TotalTime\n")

	for _, r := range results {
		f.WriteString(fmt.Sprintf("%s,%d,%d,%d,%v,%v,%v,%v,%v,%v,%v\n",
			r.Component,
			r.Rounds,
			r.OpsRun,
			r.OpsDone,
			r.MinLatency.Nanoseconds(),
			r.AvgLatency.Nanoseconds(),
			r.MedianLatency.Nanoseconds(),
			r.P95Latency.Nanoseconds(),
			r.P99Latency.Nanoseconds(),
			r.MaxLatency.Nanoseconds(),
			r.TotalTime.Nanoseconds()))
	}

	return nil
}
