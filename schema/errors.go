/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds, used with errors.Is against the typed errors below.
var (
	ErrTokenReference     = errors.New("token reference error")
	ErrCircularReference  = errors.New("circular reference detected")
	ErrModifier           = errors.New("modifier error")
	ErrValidation         = errors.New("validation error")
	ErrFileOperation      = errors.New("file operation error")
	ErrConfiguration      = errors.New("configuration error")
	ErrBasePermutation    = errors.New("base permutation error")
)

// TokenReferenceError indicates a missing or unknown $ref / alias reference.
type TokenReferenceError struct {
	URI         string
	Path        string
	Suggestions []string
}

func (e *TokenReferenceError) Error() string {
	var sb strings.Builder
	sb.WriteString("unresolved reference")
	if e.URI != "" {
		fmt.Fprintf(&sb, " %q", e.URI)
	}
	if e.Path != "" {
		fmt.Fprintf(&sb, " at %s", e.Path)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&sb, " (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return sb.String()
}

func (e *TokenReferenceError) Unwrap() error { return ErrTokenReference }

// CircularReferenceError carries the full cycle trail.
type CircularReferenceError struct {
	Trail []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference: %s", strings.Join(e.Trail, " -> "))
}

func (e *CircularReferenceError) Unwrap() error { return ErrCircularReference }

// ModifierError indicates an unknown modifier name or context value.
type ModifierError struct {
	Modifier  string
	Context   string
	Available []string
}

func (e *ModifierError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("modifier %q has no context %q (available: %s)",
			e.Modifier, e.Context, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("unknown modifier %q (available: %s)", e.Modifier, strings.Join(e.Available, ", "))
}

func (e *ModifierError) Unwrap() error { return ErrModifier }

// ValidationIssue is a single path-scoped validation failure.
type ValidationIssue struct {
	Path    string
	Message string
}

// ValidationError carries a list of per-path schema validation issues.
type ValidationError struct {
	FilePath string
	Issues   []ValidationIssue
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		fmt.Fprintf(&sb, "%s: ", e.FilePath)
	}
	fmt.Fprintf(&sb, "%d validation issue(s)", len(e.Issues))
	for _, issue := range e.Issues {
		fmt.Fprintf(&sb, "; %s: %s", issue.Path, issue.Message)
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FileOperationError wraps an I/O failure with the offending path.
type FileOperationError struct {
	Op    string
	Path  string
	Cause error
}

func (e *FileOperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *FileOperationError) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, ErrFileOperation) to succeed without losing the
// wrapped cause from Unwrap (used for message formatting elsewhere).
func (e *FileOperationError) Is(target error) bool { return target == ErrFileOperation }

// ConfigurationError indicates a malformed plugin or missing required option.
type ConfigurationError struct {
	Component string
	Message   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// BasePermutationError indicates a bundler could not identify the base
// permutation (every modifier at its default) among the results it was given.
type BasePermutationError struct {
	Output string
}

func (e *BasePermutationError) Error() string {
	return fmt.Sprintf("output %q: could not identify base permutation", e.Output)
}

func (e *BasePermutationError) Unwrap() error { return ErrBasePermutation }

// Suggest returns the closest-matching names to target by Levenshtein
// distance, capped at max results. Used to populate TokenReferenceError.Suggestions.
func Suggest(target string, candidates []string, max int) []string {
	type scored struct {
		name string
		dist int
	}
	scoredList := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		scoredList = append(scoredList, scored{c, levenshtein(target, c)})
	}
	// simple selection sort for the top `max` closest; candidate lists are
	// small (token name sets per permutation), so O(n*max) is fine.
	result := make([]string, 0, max)
	used := make([]bool, len(scoredList))
	for range max {
		best := -1
		for i, s := range scoredList {
			if used[i] {
				continue
			}
			if best == -1 || s.dist < scoredList[best].dist {
				best = i
			}
		}
		if best == -1 || scoredList[best].dist > len(target)/2+2 {
			break
		}
		used[best] = true
		result = append(result, scoredList[best].name)
	}
	return result
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[m]
}
