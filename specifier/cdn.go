/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "fmt"

// CDN selects the content-delivery network a package specifier falls back
// to when local node_modules resolution fails.
type CDN string

const (
	// CDNUnpkg is the default CDN. It does not serve jsr: specifiers.
	CDNUnpkg CDN = "unpkg"
	// CDNEsmSh is the only CDN that serves jsr: specifiers.
	CDNEsmSh CDN = "esm.sh"
)

// ParseCDN validates a CDN name from config or CLI input.
func ParseCDN(s string) (CDN, error) {
	switch CDN(s) {
	case CDNUnpkg, CDNEsmSh:
		return CDN(s), nil
	default:
		return "", fmt.Errorf("specifier: unknown CDN %q", s)
	}
}

// CDNURL returns the CDN URL for an npm: or jsr: specifier. Returns
// ("", false) for local paths, specifiers missing a file component, or a
// jsr: specifier paired with a CDN that doesn't serve jsr packages.
func CDNURL(spec string, cdn CDN) (string, bool) {
	parsed := Parse(spec)
	if parsed.Kind == KindLocal || parsed.Package == "" || parsed.File == "" {
		return "", false
	}
	if cdn == "" {
		cdn = CDNUnpkg
	}
	if parsed.Kind == KindJSR && cdn != CDNEsmSh {
		return "", false
	}

	switch cdn {
	case CDNEsmSh:
		if parsed.Kind == KindJSR {
			return "https://esm.sh/jsr/" + parsed.Package + "/" + parsed.File, true
		}
		return "https://esm.sh/" + parsed.Package + "/" + parsed.File, true
	default:
		return "https://unpkg.com/" + parsed.Package + "/" + parsed.File, true
	}
}
