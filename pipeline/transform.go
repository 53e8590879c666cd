/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"fmt"

	"go.tokenforge.dev/tokenforge/token"
)

// Transform rewrites a token's name and/or $value. It MUST NOT change Path
// or Type. Matcher, when set, gates which tokens Apply sees; a nil Matcher
// matches every token.
type Transform struct {
	Name    string
	Matcher func(*token.Token) (bool, error)
	Apply   func(*token.Token) (*token.Token, error)
}

// TransformError reports a single transform failure for one token, with
// enough identity to diagnose it (spec §4.6 error policy).
type TransformError struct {
	TransformName string
	TokenName     string
	Err           error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %q on token %q: %v", e.TransformName, e.TokenName, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// MatcherWarning is a non-fatal diagnostic: a transform's matcher errored
// and was treated as "no match".
type MatcherWarning struct {
	TransformName string
	TokenName     string
	Err           error
}

func (w *MatcherWarning) Error() string {
	return fmt.Sprintf("matcher for transform %q on token %q failed, treating as no match: %v", w.TransformName, w.TokenName, w.Err)
}

// ApplyTransforms runs transforms over tokens in list order, each seeing the
// previous transform's output. A transform that returns an error aborts the
// whole output (returned as *TransformError); matcher errors are downgraded
// to warnings and returned alongside a successful result.
func ApplyTransforms(tokens []*token.Token, transforms []Transform) ([]*token.Token, []error, error) {
	current := make([]*token.Token, len(tokens))
	copy(current, tokens)

	var warnings []error
	for _, tr := range transforms {
		next := make([]*token.Token, len(current))
		for i, tok := range current {
			if tr.Matcher != nil {
				match, err := tr.Matcher(tok)
				if err != nil {
					warnings = append(warnings, &MatcherWarning{TransformName: tr.Name, TokenName: tok.Name, Err: err})
					next[i] = tok
					continue
				}
				if !match {
					next[i] = tok
					continue
				}
			}
			out, err := tr.Apply(tok)
			if err != nil {
				return nil, warnings, &TransformError{TransformName: tr.Name, TokenName: tok.Name, Err: err}
			}
			next[i] = out
		}
		current = next
	}
	return current, warnings, nil
}
