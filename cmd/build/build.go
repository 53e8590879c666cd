/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the build command for tokenforge.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go.tokenforge.dev/tokenforge/buildconfig"
	tffs "go.tokenforge.dev/tokenforge/fs"
	"go.tokenforge.dev/tokenforge/internal/logger"
	"go.tokenforge.dev/tokenforge/orchestrator"
	"go.tokenforge.dev/tokenforge/reference"
	"go.tokenforge.dev/tokenforge/specifier"
)

// Cmd is the build cobra command.
var Cmd = &cobra.Command{
	Use:   "build [resolver]",
	Short: "Resolve and render design tokens across every permutation",
	Long: `Load a resolver document, enumerate its modifier permutations, and render
every output declared in .config/tokenforge.yaml (or the config file given
with --config), writing results under --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("config", "c", "", "Config file path (default: .config/tokenforge.{yaml,json})")
	Cmd.Flags().StringP("output", "o", "", "Output directory (overrides config)")
	Cmd.Flags().Int("workers", 0, "Worker-pool concurrency cap (0: unbounded)")
	Cmd.Flags().String("validation", "", "Validation mode: error, warn, or off (overrides config)")
	Cmd.Flags().Bool("npm", false, "Enable npm: package-specifier resolution for $ref and source paths")
	Cmd.Flags().String("cdn", "", "CDN fallback for package specifiers --npm cannot resolve locally: unpkg or esm.sh")
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	outputOverride, _ := cmd.Flags().GetString("output")
	workers, _ := cmd.Flags().GetInt("workers")
	validationOverride, _ := cmd.Flags().GetString("validation")
	useNPM, _ := cmd.Flags().GetBool("npm")
	cdnFlag, _ := cmd.Flags().GetString("cdn")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(cwd, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) > 0 {
		cfg.Resolver = args[0]
	}
	if cfg.Resolver == "" {
		return fmt.Errorf("no resolver document given (pass one as an argument, or set \"resolver\" in config)")
	}
	if !filepath.IsAbs(cfg.Resolver) {
		cfg.Resolver = filepath.Join(cwd, cfg.Resolver)
	}

	if outputOverride != "" {
		cfg.OutputDir = outputOverride
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "dist"
	}
	if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(cwd, cfg.OutputDir)
	}

	if workers != 0 {
		cfg.Workers = workers
	}
	if validationOverride != "" {
		cfg.Validation.Mode = buildconfig.ValidationMode(validationOverride)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	refOpts := reference.Options{}
	if useNPM {
		refOpts.Specifier = specifier.NewNPMResolver(tffs.NewOSFileSystem(), cwd)
	}
	if cdnFlag != "" {
		cdn, err := specifier.ParseCDN(cdnFlag)
		if err != nil {
			return err
		}
		refOpts.CDN = cdn
		refOpts.Fetcher = reference.NewHTTPFetcher(0)
	}

	result, err := orchestrator.Build(context.Background(), cfg, orchestrator.BuildOptions{
		FS:        tffs.NewOSFileSystem(),
		Reference: refOpts,
		OnWarning: func(warnErr error) { logger.Warn("%v", warnErr) },
	})
	if err != nil {
		return err
	}

	for _, out := range result.Outputs {
		logger.Info("output %q: %s (%d file(s))", out.Name, out.State, len(out.Files))
	}
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %v\n", e)
		}
		return fmt.Errorf("build %s failed", result.RunID)
	}

	logger.Info("build %s succeeded: %d output(s) written to %s", result.RunID, len(result.Outputs), cfg.OutputDir)
	return nil
}

func loadConfig(cwd, configPath string) (*buildconfig.Config, error) {
	if configPath == "" {
		return buildconfig.Load(cwd)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return buildconfig.LoadBytes(data, filepath.Ext(configPath))
}
