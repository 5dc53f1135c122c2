package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Project-Sylos/Corpus/sdk"
)

func main() {
	var (
		config = flag.String("config", "configs/default.json", "Configuration file path")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("Corpus - SDK Demo")
	fmt.Println("=================")
	fmt.Println("This is a demonstration of the Corpus SDK functionality.")
	fmt.Println("For the API server, run: go run cmd/api/main.go")
	fmt.Println()

	runDemo(*config)
}

func showHelp() {
	fmt.Println("Corpus - Synthetic Object Content Generator")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run main.go [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config string")
	fmt.Println("        Configuration file path (default: configs/default.json)")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  go run main.go")
	fmt.Println("  go run main.go -config configs/custom.json")
	fmt.Println()
	fmt.Println("API Server:")
	fmt.Println("  go run cmd/api/main.go [config-file]")
	fmt.Println("  go run cmd/api/main.go configs/custom.json")
}

func runDemo(configPath string) {
	fmt.Printf("Loading configuration from: %s\n", configPath)

	corpus, err := newCorpus(configPath)
	if err != nil {
		log.Fatalf("Failed to initialize Corpus: %v", err)
	}
	defer corpus.Close()

	cfg := corpus.GetConfig()
	fmt.Printf("Configuration loaded: MeanSize=%.0f, StddevSize=%.0f, Seed=%d, Digest=%s\n",
		cfg.Content.MeanSize, cfg.Content.StddevSize, cfg.Content.Seed, cfg.Content.Digest)

	// Generate a few streams and round-trip them through a verifier
	fmt.Println("\nGenerating content streams...")
	names := corpus.Names()
	files := corpus.Files()
	for i := 0; i < 3; i++ {
		name := names.Next()
		stream := files.Next()
		fmt.Printf("  %s: size=%d seed=%d\n", name, stream.Size(), stream.Seed())

		result, err := corpus.VerifyReader(stream)
		if err != nil {
			log.Printf("Failed to verify %s: %v", name, err)
			continue
		}
		fmt.Printf("    round-trip valid=%t size=%d\n", result.Valid, result.Size)

		// Record the generating side's chunk telemetry too
		if _, err := corpus.RecordStreamPass(stream); err != nil {
			log.Printf("Failed to record stream pass: %v", err)
		}
	}

	// Demonstrate the precomputed pool
	fmt.Println("\nCycling through the precomputed pool...")
	pool, err := corpus.PooledFiles()
	if err != nil {
		log.Fatalf("Failed to build pool: %v", err)
	}
	defer pool.Close()

	for i := 0; i < 3; i++ {
		f, err := pool.Next()
		if err != nil {
			log.Printf("Failed to fetch pooled file: %v", err)
			continue
		}
		result, err := corpus.VerifyReader(f)
		f.Close()
		if err != nil {
			log.Printf("Failed to verify pooled file: %v", err)
			continue
		}
		fmt.Printf("  pooled file %d: valid=%t size=%d\n", i, result.Valid, result.Size)
	}

	// Show telemetry summary
	fmt.Println("\nChunk latency summary:")
	stats, err := corpus.Stats()
	if err != nil {
		log.Printf("Failed to compute stats: %v", err)
	} else {
		fmt.Printf("  chunks=%d mean=%.0fns median=%.0fns p95=%.0fns max=%.0fns\n",
			stats.Count, stats.MeanNs, stats.MedianNs, stats.P95Ns, stats.MaxNs)
	}

	fmt.Println("\nCorpus SDK demo completed successfully!")
	fmt.Println("\nTo start the API server, run:")
	fmt.Println("  go run cmd/api/main.go")
}

// newCorpus loads the config file when present and falls back to defaults
// otherwise, so the demo runs out of the box
func newCorpus(configPath string) (*sdk.Corpus, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file not found, using defaults\n")
		return sdk.NewWithDefaults()
	}
	return sdk.New(configPath)
}
