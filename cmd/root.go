/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tokenforge.
package cmd

import (
	"github.com/spf13/cobra"

	"go.tokenforge.dev/tokenforge/cmd/build"
	"go.tokenforge.dev/tokenforge/cmd/validate"
	"go.tokenforge.dev/tokenforge/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "tokenforge",
	Short: "Resolve and render design tokens across build-time permutations",
	Long:  `tokenforge resolves resolver documents and renders design tokens, defined by the Design Tokens Community Group specification, across every declared build-time permutation.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Force schema version (draft, v2025_10)")

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
