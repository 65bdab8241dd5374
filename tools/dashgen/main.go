package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/ebay-lister/tools/dashgen/dashboards"
	"github.com/donaldgifford/ebay-lister/tools/dashgen/rules"
	"github.com/donaldgifford/ebay-lister/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	dailyLimit := flag.Int("daily-limit", 0, "override the eBay daily call limit used by quota panels and alerts")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *dailyLimit != 0 {
		cfg.DailyLimit = *dailyLimit
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, result, err := build(cfg)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Ok() {
		return fmt.Errorf("validation failed:\n  %s", strings.Join(result.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.path, err)
		}
		if err := os.WriteFile(path, a.data, 0o644); err != nil { //nolint:gosec // generated artifacts are world-readable
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// build renders every enabled artifact and validates its PromQL.
func build(cfg Config) ([]artifact, validate.Result, error) {
	var (
		out    []artifact
		result validate.Result
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview(cfg.DailyLimit).Build()
		if err != nil {
			return nil, result, fmt.Errorf("building overview dashboard: %w", err)
		}
		res := validate.Dashboard(dash, KnownMetrics)
		result.Errors = append(result.Errors, res.Errors...)
		result.Warnings = append(result.Warnings, res.Warnings...)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, result, fmt.Errorf("encoding overview dashboard: %w", err)
		}
		out = append(out, artifact{
			path: filepath.Join("grafana", "data", dashboards.UID+".json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		for _, cr := range []rules.PrometheusRule{rules.RecordingRules(), rules.AlertRules(cfg.DailyLimit)} {
			res := validate.Rules(cr, KnownMetrics)
			result.Errors = append(result.Errors, res.Errors...)
			result.Warnings = append(result.Warnings, res.Warnings...)

			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, result, fmt.Errorf("encoding %s: %w", cr.Metadata.Name, err)
			}
			out = append(out, artifact{
				path: filepath.Join("prometheus", cr.Metadata.Name+".yaml"),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	if len(out) == 0 {
		return nil, result, errors.New("no artifacts generated")
	}
	return out, result, nil
}
