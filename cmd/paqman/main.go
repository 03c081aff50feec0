// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool

	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "paqman",
	Short: "PAQMan - single-block compression and archiving tool",
	Long: `PAQMan packs a file or a directory tree into one compressed block
and later lists or restores it.

Levels:
  0:   store only (no compression)
  1-5: increasing compression effort (5 is slowest/best)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cfgFile); err != nil {
			return err
		}
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		log = l.Sugar()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
