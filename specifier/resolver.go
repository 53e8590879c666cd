/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "fmt"

// ResolvedFile preserves both the original specifier and the resolved
// filesystem path a reference.Resolve call should read from.
type ResolvedFile struct {
	Specifier string
	Path      string
	Kind      Kind
}

// Resolver resolves specifiers to filesystem paths. A reference.Options
// value carries one of these as an opt-in extension; when left nil,
// reference.Resolve only ever reads local file paths, so the required path
// of spec.md §4.2 never depends on a Resolver existing.
type Resolver interface {
	Resolve(spec string) (*ResolvedFile, error)
	CanResolve(spec string) bool
}

// ChainResolver tries multiple resolvers in order.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a resolver that tries each resolver in order.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

func (c *ChainResolver) Resolve(spec string) (*ResolvedFile, error) {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return r.Resolve(spec)
		}
	}
	return nil, fmt.Errorf("specifier: no resolver found for %q", spec)
}

func (c *ChainResolver) CanResolve(spec string) bool {
	for _, r := range c.resolvers {
		if r.CanResolve(spec) {
			return true
		}
	}
	return false
}
