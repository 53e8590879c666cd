/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tokenforge.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"go.tokenforge.dev/tokenforge/docloader"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/validator"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check token files for internal schema consistency",
	Long: `Validate token files: detect each file's schema version and check that it
is internally consistent with that version (no draft file using 2025.10-only
syntax, and no 2025.10 file falling back to draft-only syntax).

Pass one or more token files directly (doublestar globs like
"tokens/**/*.json" are expanded), or --resolver to validate every source
file a resolver document's sets and modifier contexts name.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("resolver", "", "Validate every source file named by this resolver document instead of the given files")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	resolverPath, _ := cmd.Flags().GetString("resolver")
	schemaFlag, _ := cmd.Flags().GetString("schema")

	files := args
	if resolverPath != "" {
		expanded, err := sourcesFromResolver(resolverPath)
		if err != nil {
			return err
		}
		files = expanded
	} else {
		expanded, err := expandGlobs(files)
		if err != nil {
			return err
		}
		files = expanded
	}
	if len(files) == 0 {
		return fmt.Errorf("no files specified (pass files directly, or use --resolver)")
	}

	var forcedVersion schema.Version
	if schemaFlag != "" {
		v, err := schema.FromString(schemaFlag)
		if err != nil {
			return fmt.Errorf("invalid schema version: %s", schemaFlag)
		}
		forcedVersion = v
	}

	hasErrors := false
	for _, file := range files {
		if !quiet {
			fmt.Printf("Validating %s...\n", file)
		}

		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", file, err)
			hasErrors = true
			continue
		}

		version := forcedVersion
		if version == schema.Unknown {
			version, err = schema.DetectVersion(data, nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error detecting schema for %s: %v\n", file, err)
				hasErrors = true
				continue
			}
		}

		verr, err := validator.ValidateConsistencyError(data, version, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error validating %s: %v\n", file, err)
			hasErrors = true
			continue
		}
		if verr != nil {
			fmt.Fprintln(os.Stderr, verr.Error())
			hasErrors = true
			continue
		}

		if !quiet {
			fmt.Printf("  schema: %s, consistent\n", version)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}
	if !quiet {
		fmt.Println("All files valid.")
	}
	return nil
}

// expandGlobs expands any argument containing a doublestar glob
// metacharacter (e.g. "tokens/**/*.json") into its matches, leaving plain
// paths (most shells already expand globs before args reach us) untouched.
func expandGlobs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// sourcesFromResolver loads resolverPath and returns every source path its
// sets and modifier contexts name, resolved relative to the document's base
// directory.
func sourcesFromResolver(resolverPath string) ([]string, error) {
	doc, err := docloader.Load(resolverPath)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(src string) {
		abs := src
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(doc.BaseDir, abs)
		}
		if !seen[abs] {
			seen[abs] = true
			paths = append(paths, abs)
		}
	}
	for _, set := range doc.Sets {
		for _, src := range set.Sources {
			add(src)
		}
	}
	for _, mod := range doc.Modifiers {
		for _, modCtx := range mod.Contexts {
			for _, src := range modCtx.Sources {
				add(src)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
