// Command lonnstall-report prints the dashboard for one filter to the
// terminal, reading from the configured backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"lonnstall/internal/backend"
	"lonnstall/internal/cli"
	"lonnstall/internal/core"
	"lonnstall/internal/log"
	"lonnstall/internal/report"
	"lonnstall/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.MustConfig()

	def := core.DefaultFilter()
	var f core.FilterSpec
	flag.StringVar(&f.Gender, "gender", "", "Only this gender")
	flag.StringVar(&f.Field, "field", "", "Only this field")
	flag.StringVar(&f.Location, "location", "", "Only this location")
	flag.StringVar(&f.JobType, "job-type", "", "Only this job type")
	flag.Float64Var(&f.MinSalary, "min-salary", def.MinSalary, "Minimum yearly salary in NOK")
	flag.Float64Var(&f.MaxSalary, "max-salary", def.MaxSalary, "Maximum yearly salary in NOK")
	flag.IntVar(&f.MinExperience, "min-experience", def.MinExperience, "Minimum years of experience")
	flag.IntVar(&f.MaxExperience, "max-experience", def.MaxExperience, "Maximum years of experience")
	top := flag.Int("top", 10, "Fields to list in the growth table, 0 for all")
	plain := flag.Bool("plain", false, "Disable colours and styling")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nPrints salary statistics for the selected filter.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *plain {
		pterm.DisableStyling()
	}
	logger := cli.SetupLogger(cfg, os.Stderr).WithComponent(log.ComponentReport)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err.Error())
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Slog()).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer res.Close()

	svc := services.NewDashboardService(res.Reader, nil, logger)
	if err := svc.Load(ctx); err != nil {
		pterm.Error.Println("Error: Failed to fetch salary data")
		os.Exit(1)
	}
	d, err := svc.Dashboard(ctx, f)
	if err != nil {
		logger.Error("Dashboard unavailable", log.FieldError, err.Error())
		os.Exit(1)
	}
	if err := report.Render(os.Stdout, d, svc.Info(), report.Options{TopFields: *top}); err != nil {
		logger.Error("Render failed", log.FieldError, err.Error())
		os.Exit(1)
	}
}
