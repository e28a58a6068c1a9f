package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"tea-go/pkg/benchmark"
	"tea-go/pkg/log"
	"tea-go/pkg/tea"
)

// Version information - will be set at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Command-line flags
var (
	componentFlag     string
	iterationsFlag    int
	roundsFlag        int
	keyFlag           string
	outputFlag        string
	allComponentsFlag bool
	helpFlag          bool
)

func init() {
	flag.StringVar(&componentFlag, "component", "encrypt", "Operation to benchmark (encrypt, decrypt, roundtrip)")
	flag.IntVar(&iterationsFlag, "iterations", 100000, "Number of iterations to run")
	flag.IntVar(&roundsFlag, "rounds", tea.NumRounds, "Number of mixing rounds")
	flag.StringVar(&keyFlag, "key", "", "Key as 32 hex digits (random-looking default when omitted)")
	flag.StringVar(&outputFlag, "output", "", "Output file for results (CSV format)")
	flag.BoolVar(&allComponentsFlag, "allcomponents", false, "Run benchmarks for all operations")
	flag.BoolVar(&helpFlag, "help", false, "Show help")

	// Parse flags
	flag.Parse()

	// Show help if requested
	if helpFlag {
		printUsage()
		os.Exit(0)
	}
}

func printUsage() {
	fmt.Printf("tea-go Benchmark Tool %s (built %s)\n\n", Version, BuildTime)
	fmt.Println("Usage: benchmark [options]")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()

	fmt.Println("\nExamples:")
	fmt.Println("  benchmark --component encrypt --iterations 1000000")
	fmt.Println("  benchmark --component roundtrip --rounds 64")
	fmt.Println("  benchmark --allcomponents --output results.csv")
}

func parseComponent(compStr string) (benchmark.Component, error) {
	switch strings.ToLower(compStr) {
	case "encrypt":
		return benchmark.ComponentEncrypt, nil
	case "decrypt":
		return benchmark.ComponentDecrypt, nil
	case "roundtrip":
		return benchmark.ComponentRoundTrip, nil
	case "all":
		return benchmark.ComponentAll, nil
	default:
		return 0, fmt.Errorf("unknown component: %s", compStr)
	}
}

func main() {
	log.SetStd()
	fmt.Printf("tea-go Benchmark Tool %s (built %s)\n\n", Version, BuildTime)

	// Setup benchmark options
	opts := benchmark.DefaultBenchmarkOptions()
	opts.Iterations = iterationsFlag
	opts.Rounds = roundsFlag

	if keyFlag != "" {
		key, err := tea.ParseKey(keyFlag)
		if err != nil {
			log.Fatalf("Invalid key: %v", err)
		}
		opts.Key = key
	}

	// Store results
	var results []*benchmark.LatencyResults

	// Run benchmarks for all operations or just the specified one
	if allComponentsFlag {
		log.Printf("Running benchmarks for all operations...")

		allResults, err := benchmark.RunAllBenchmarks(opts)
		if err != nil {
			log.Printf("Some benchmarks failed: %v", err)
		}
		results = append(results, allResults...)

	} else {
		component, err := parseComponent(componentFlag)
		if err != nil {
			log.Fatalf("Invalid component: %v", err)
		}

		if component == benchmark.ComponentAll {
			allResults, err := benchmark.RunAllBenchmarks(opts)
			if err != nil {
				log.Printf("Some benchmarks failed: %v", err)
			}
			results = append(results, allResults...)
		} else {
			opts.Component = component

			log.Printf("Running benchmark for %s...", component)
			log.Printf("Iterations: %d, Rounds: %d", opts.Iterations, opts.Rounds)

			startTime := time.Now()
			result, err := benchmark.BenchmarkLatency(opts)
			if err != nil {
				log.Fatalf("Benchmark failed: %v", err)
			}

			log.Printf("Benchmark completed in %v", time.Since(startTime))

			benchmark.PrintResults(component, result)

			results = append(results, result)
		}
	}

	// Save results to file if specified
	if outputFlag != "" && len(results) > 0 {
		log.Printf("Saving results to %s", outputFlag)
		if err := benchmark.SaveResultsToFile(results, outputFlag); err != nil {
			log.Fatalf("Failed to save results: %v", err)
		}
		log.Printf("Results saved successfully")
	}
}
