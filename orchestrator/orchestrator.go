/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package orchestrator runs the full ten-stage pipeline over a loaded
// resolver document: it enumerates permutations, merges and resolves each
// one concurrently (Stages 2-7), then filters, transforms, and renders each
// configured output concurrently (Stages 8-10), writing the resulting files
// to disk. It generalizes the teacher's single-document, single-format
// load.Load pipeline into a parallel, multi-permutation, multi-output build.
package orchestrator

import (
	"context"
	"path/filepath"
	"sort"

	deadlock "github.com/sasha-s/go-deadlock"
	"github.com/segmentio/ksuid"
	"github.com/sourcegraph/conc/pool"

	"go.tokenforge.dev/tokenforge/alias"
	"go.tokenforge.dev/tokenforge/buildconfig"
	"go.tokenforge.dev/tokenforge/docloader"
	"go.tokenforge.dev/tokenforge/filecache"
	"go.tokenforge.dev/tokenforge/flatten"
	tffs "go.tokenforge.dev/tokenforge/fs"
	"go.tokenforge.dev/tokenforge/internal/logger"
	"go.tokenforge.dev/tokenforge/pipeline"
	"go.tokenforge.dev/tokenforge/reference"
	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/token"
	"go.tokenforge.dev/tokenforge/validator"
)

// OutputState tracks one output's progress through Stage 8-10, per the
// pending -> rendering -> succeeded|failed -> written state machine.
type OutputState string

const (
	OutputPending   OutputState = "pending"
	OutputRendering OutputState = "rendering"
	OutputSucceeded OutputState = "succeeded"
	OutputFailed    OutputState = "failed"
	OutputWritten   OutputState = "written"
)

// BuildOptions configures one Build call beyond what buildconfig.Config
// declares: the filesystem outputs are written through, and the additive
// package-specifier/CDN-fallback behavior $ref and resolutionOrder loading
// may use.
type BuildOptions struct {
	// FS is the filesystem used for both reading the validation hook's raw
	// source bytes and writing rendered output files. Defaults to
	// tffs.NewOSFileSystem().
	FS tffs.FileSystem

	// Reference carries opt-in specifier/CDN-fallback resolution, threaded
	// through every Merge and Resolve call this build makes.
	Reference reference.Options

	// Preprocessors run as Stage 4 over every permutation's raw merged
	// document, before Stage 5 re-resolves references. Programmatic
	// callers supply arbitrary passes here; cfg.Preprocessors names
	// built-in ones by name (see buildPreprocessors) and both sets run,
	// config-named ones first.
	Preprocessors []resolution.Preprocessor

	// OnWarning receives non-fatal diagnostics: per-permutation resolution
	// warnings, matcher warnings, and validation-mode "warn" issues.
	// Defaults to logger.Warn.
	OnWarning func(error)
}

// OutputResult is one configured output's final state.
type OutputResult struct {
	Name  string
	State OutputState
	Files render.OutputTree
	Err   error
}

// BuildResult is the outcome of one Build call.
type BuildResult struct {
	RunID   string
	Success bool
	Outputs []OutputResult
	Errors  []error
}

// permResult is one permutation's Stage 2-7 outcome, kept in submission
// order so downstream bundling can rely on permutation-declaration order
// (spec P2) regardless of which permutation's pipeline finishes first.
type permResult struct {
	perm   resolution.Permutation
	tokens []*token.Token
	err    error
}

// Build runs the full pipeline for cfg.Resolver and every output cfg
// declares, writing successful outputs under cfg.OutputDir.
func Build(ctx context.Context, cfg *buildconfig.Config, opts BuildOptions) (*BuildResult, error) {
	if opts.FS == nil {
		opts.FS = tffs.NewOSFileSystem()
	}
	onWarning := opts.OnWarning
	if onWarning == nil {
		onWarning = func(err error) { logger.Warn("%v", err) }
	}

	result := &BuildResult{RunID: ksuid.New().String(), Success: true}
	var errMu deadlock.Mutex
	addErr := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		result.Errors = append(result.Errors, err)
		result.Success = false
	}

	doc, err := docloader.Load(cfg.Resolver)
	if err != nil {
		addErr(err)
		return result, err
	}

	if err := runValidationHook(doc, cfg.Validation, opts.FS, onWarning, addErr); err != nil {
		return result, err
	}

	named, err := buildPreprocessors(cfg.Preprocessors)
	if err != nil {
		addErr(err)
		return result, err
	}
	preprocessors := append(named, opts.Preprocessors...)

	perms := resolution.EnumeratePermutations(doc)
	cache := filecache.New()

	permResults := runPermutations(ctx, doc, perms, cache, opts.Reference, preprocessors, onWarning, cfg.Workers)

	// A failed permutation contributes no tokens to any output; the build
	// continues rendering with whichever permutations did succeed.
	tokensByPerm := make([]render.PermutationResult, 0, len(permResults))
	for _, pr := range permResults {
		if pr.err != nil {
			addErr(pr.err)
			continue
		}
		tokensByPerm = append(tokensByPerm, render.PermutationResult{Permutation: pr.perm, Tokens: pr.tokens})
	}

	var basePerm resolution.Permutation
	for _, p := range perms {
		if p.IsBase {
			basePerm = p
			break
		}
	}
	meta := render.BuildMeta(doc, basePerm)
	renderCtx := render.Context{Permutations: tokensByPerm, Resolver: doc, Meta: meta}

	outputs := runOutputs(renderCtx, cfg.Outputs, cfg.Workers, addErr, onWarning)

	for i, out := range outputs {
		if out.State != OutputSucceeded {
			continue
		}
		if err := writeOutput(opts.FS, cfg.OutputDir, out.Files); err != nil {
			outputs[i].State = OutputFailed
			outputs[i].Err = err
			addErr(err)
			continue
		}
		outputs[i].State = OutputWritten
	}
	result.Outputs = outputs

	return result, nil
}

// runValidationHook reads every declared source document's raw bytes (a
// side path independent of filecache, which only stores parsed trees),
// detects its schema version, and checks internal consistency, respecting
// cfg.Validation.Mode.
func runValidationHook(doc *docloader.Document, cfg buildconfig.ValidationConfig, fsys tffs.FileSystem, onWarning func(error), addErr func(error)) error {
	if cfg.Mode == buildconfig.ValidationOff {
		return nil
	}

	for _, path := range sourcePaths(doc) {
		abs := path
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(doc.BaseDir, abs)
		}
		data, err := fsys.ReadFile(abs)
		if err != nil {
			continue // unreadable/remote sources are caught later by the merge stage's own file-operation error
		}

		version, err := schema.DetectVersion(data, nil)
		if err != nil {
			onWarning(err)
			continue
		}

		verr, err := validator.ValidateConsistencyError(data, version, abs)
		if err != nil {
			onWarning(err)
			continue
		}
		if verr == nil {
			continue
		}
		if cfg.Mode == buildconfig.ValidationError {
			addErr(verr)
			return verr
		}
		onWarning(verr)
	}
	return nil
}

func sourcePaths(doc *docloader.Document) []string {
	var paths []string
	for _, set := range doc.Sets {
		paths = append(paths, set.Sources...)
	}
	for _, mod := range doc.Modifiers {
		for _, modCtx := range mod.Contexts {
			paths = append(paths, modCtx.Sources...)
		}
	}
	sort.Strings(paths)
	return paths
}

// runPermutations runs Stages 2-7 for every permutation concurrently over
// the shared cache, returning results in perms' original order.
func runPermutations(ctx context.Context, doc *docloader.Document, perms []resolution.Permutation, cache *filecache.Cache, refOpts reference.Options, preprocessors []resolution.Preprocessor, onWarning func(error), workers int) []permResult {
	p := pool.NewWithResults[permResult]()
	if workers > 0 {
		p = p.WithMaxGoroutines(workers)
	}
	for _, perm := range perms {
		perm := perm
		p.Go(func() permResult {
			return runOnePermutation(ctx, doc, perm, cache, refOpts, preprocessors, onWarning)
		})
	}
	return p.Wait()
}

func runOnePermutation(ctx context.Context, doc *docloader.Document, perm resolution.Permutation, cache *filecache.Cache, refOpts reference.Options, preprocessors []resolution.Preprocessor, onWarning func(error)) permResult {
	merged, err := resolution.MergeWithOptions(ctx, doc, perm, cache, refOpts, preprocessors)
	if err != nil {
		return permResult{perm: perm, err: err}
	}
	for _, d := range merged.Diagnostics {
		onWarning(d)
	}

	flat, err := flatten.Flatten(merged.Root, merged.Provenance)
	if err != nil {
		return permResult{perm: perm, err: err}
	}

	if err := alias.Resolve(flat.Tokens); err != nil {
		return permResult{perm: perm, err: err}
	}

	names := make([]string, 0, len(flat.Tokens))
	for n := range flat.Tokens {
		names = append(names, n)
	}
	sort.Strings(names)

	tokens := make([]*token.Token, len(names))
	for i, n := range names {
		tokens[i] = flat.Tokens[n]
	}

	return permResult{perm: perm, tokens: tokens}
}

// runOutputs runs Stages 8-10 for every configured output concurrently; a
// failure in one output never aborts another (spec §7).
func runOutputs(ctx render.Context, specs []buildconfig.OutputSpec, workers int, addErr func(error), onWarning func(error)) []OutputResult {
	p := pool.NewWithResults[OutputResult]()
	if workers > 0 {
		p = p.WithMaxGoroutines(workers)
	}
	for _, spec := range specs {
		spec := spec
		p.Go(func() OutputResult {
			return runOneOutput(ctx, spec, addErr, onWarning)
		})
	}
	return p.Wait()
}

func runOneOutput(renderCtx render.Context, spec buildconfig.OutputSpec, addErr func(error), onWarning func(error)) OutputResult {
	out := OutputResult{Name: spec.Name, State: OutputRendering}

	renderer, opts, err := buildRenderer(spec)
	if err != nil {
		out.State = OutputFailed
		out.Err = err
		addErr(err)
		return out
	}

	filters, transforms, ferr := buildFiltersAndTransforms(spec)
	if ferr != nil {
		out.State = OutputFailed
		out.Err = ferr
		addErr(ferr)
		return out
	}

	permutations := make([]render.PermutationResult, len(renderCtx.Permutations))
	for i, pr := range renderCtx.Permutations {
		filtered := pipeline.ApplyFilters(pr.Tokens, filters)
		transformed, warnings, terr := pipeline.ApplyTransforms(filtered, transforms)
		for _, w := range warnings {
			onWarning(w)
		}
		if terr != nil {
			out.State = OutputFailed
			out.Err = terr
			addErr(terr)
			return out
		}
		permutations[i] = render.PermutationResult{Permutation: pr.Permutation, Tokens: transformed}
	}

	files, err := renderer.Format(render.Context{Permutations: permutations, Resolver: renderCtx.Resolver, Meta: renderCtx.Meta}, opts)
	if err != nil {
		out.State = OutputFailed
		out.Err = err
		addErr(err)
		return out
	}

	out.State = OutputSucceeded
	out.Files = files
	return out
}

func writeOutput(fsys tffs.FileSystem, outputDir string, files render.OutputTree) error {
	for name, content := range files {
		path := filepath.Join(outputDir, name)
		if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return &schema.FileOperationError{Op: "mkdir", Path: filepath.Dir(path), Cause: err}
		}
		if err := fsys.WriteFile(path, []byte(content), 0o644); err != nil {
			return &schema.FileOperationError{Op: "write", Path: path, Cause: err}
		}
	}
	return nil
}
