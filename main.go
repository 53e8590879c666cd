/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command tokenforge resolves and renders DTCG design tokens across
// build-time modifier permutations.
package main

import (
	"os"

	"go.tokenforge.dev/tokenforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
