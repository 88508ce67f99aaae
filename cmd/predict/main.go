// Command predict runs one applicant profile through the admission pipeline
// and prints the predicted chance with the matching colleges.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/gradpredict/internal/adapters/applicant"
	app "github.com/okian/gradpredict/internal/app"
	"github.com/okian/gradpredict/internal/config"
	"github.com/okian/gradpredict/internal/domain/admission"
	"github.com/okian/gradpredict/internal/domain/catalog"
	"github.com/okian/gradpredict/pkg/logger"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type output struct {
	AdmissionPercentage float64         `json:"admission_percentage"`
	RecommendedColleges []catalog.Entry `json:"recommended_colleges"`
	Message             string          `json:"message"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, loads the artifacts and writes the result to stdout.
// Diagnostics and logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Server settings are irrelevant here; only the paths are checked.
	cfg, err := config.Read(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config:", err)
		return exitFailure
	}

	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		p        admission.Profile
		research string
	)
	fs.IntVar(&p.GREScore, "gre", 0, "GRE score (0 to 340)")
	fs.IntVar(&p.TOEFLScore, "toefl", 0, "TOEFL score (0 to 120)")
	fs.IntVar(&p.UniversityRating, "rating", 1, "University rating (1 to 5)")
	fs.Float64Var(&p.SOP, "sop", 1.0, "Statement of purpose strength (1.0 to 5.0)")
	fs.Float64Var(&p.LOR, "lor", 1.0, "Letter of recommendation strength (1.0 to 5.0)")
	fs.Float64Var(&p.CGPA, "cgpa", 1.0, "Undergraduate CGPA (1.00 to 10.00)")
	fs.StringVar(&research, "research", "no", "Research experience (yes or no)")
	var (
		scalerPath  = fs.String("scaler", cfg.ScalerPath, "Scaler artifact (JSON or YAML)")
		modelPath   = fs.String("model", cfg.ModelPath, "Model artifact (JSON or YAML)")
		catalogPath = fs.String("catalog", cfg.CatalogPath, "College catalog (.csv or SQLite)")
		asJSON      = fs.Bool("json", false, "Print the result as JSON")
		strict      = fs.Bool("strict", false, "Reject inputs outside the documented ranges")
		logLevel    = fs.String("log-level", "warn", "Log level for diagnostics on stderr")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg.ScalerPath, cfg.ModelPath, cfg.CatalogPath = *scalerPath, *modelPath, *catalogPath
	if err := cfg.ValidatePaths(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if p.Research, err = applicant.ParseResearch(research); err != nil {
		fmt.Fprintf(stderr, "invalid -research %q: want yes or no\n", research)
		return exitUsage
	}
	if *strict {
		req := applicant.FromProfile(p)
		if errs := req.Validate(); len(errs) > 0 {
			fmt.Fprintln(stderr, errs.Err())
			return exitUsage
		}
	}

	if err := logger.InitWith(stderr, logger.FormatText); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging:", err)
		return exitFailure
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	svc := app.New(
		app.WithLogger(logger.Named("predict")),
		app.WithScalerPath(cfg.ScalerPath),
		app.WithModelPath(cfg.ModelPath),
		app.WithCatalogPath(cfg.CatalogPath),
	)
	if err := svc.Start(ctx); err != nil {
		fmt.Fprintln(stderr, "failed to load artifacts:", err)
		return exitFailure
	}
	defer svc.Stop()

	res, err := svc.Predict(ctx, p)
	if err != nil {
		fmt.Fprintln(stderr, "prediction failed:", err)
		return exitFailure
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output{
			AdmissionPercentage: res.AdmissionPercentage,
			RecommendedColleges: res.RecommendedColleges,
			Message:             res.Message(),
		}); err != nil {
			fmt.Fprintln(stderr, "failed to write result:", err)
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintf(stdout, "Your predicted admission chance is: %v%%\n\n", res.AdmissionPercentage)
	fmt.Fprintln(stdout, res.Message())
	for _, c := range res.RecommendedColleges {
		fmt.Fprintf(stdout, "- %s\n", c.Name)
	}
	return exitOK
}
