package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/gradpredict/internal/loadcheck"
	"github.com/okian/gradpredict/pkg/logger"
)

// Default configuration constants.
const (
	defaultProfiles    = 10000
	defaultRepeats     = 500
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		profiles = flag.Int("profiles", defaultProfiles, "Number of random profiles to submit")
		repeats  = flag.Int("repeats", defaultRepeats, "Profiles to resubmit to check determinism")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the profile generator")
		verbose  = flag.Bool("verbose", false, "Log every failure and violation")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &loadcheck.Config{
		BaseURL:  *baseURL,
		Profiles: *profiles,
		Repeats:  *repeats,
		Workers:  *workers,
		Timeout:  *timeout,
		Seed:     *seed,
		Verbose:  *verbose,
	}

	if _, err := loadcheck.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load check failed", logger.Error(err), logger.Any("seed", *seed))
		cancel()
		os.Exit(1)
	}
}
