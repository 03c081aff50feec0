// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CEO-netizen/paqman/paq"
)

var unpackCmd = &cobra.Command{
	Use:     "unpack <archive> [destdir]",
	Aliases: []string{"d", "x", "decompress"},
	Short:   "Extract an archive into a directory",
	Long: `Unpack restores every entry of the archive beneath the destination
directory (default: the current directory), creating it if needed. Entries
extracted before a failure are left in place.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runUnpack,
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(cmd *cobra.Command, args []string) error {
	input := args[0]
	dest := "."
	if len(args) == 2 {
		dest = args[1]
	}

	log.Infof("unpacking %s -> %s", input, dest)

	f, err := os.Open(input)
	if err != nil {
		return errors.Wrap(err, "opening archive")
	}
	defer f.Close()

	if err := paq.Unpack(bufio.NewReaderSize(f, 64<<10), dest); err != nil {
		return err
	}
	log.Infof("unpacked %s", input)
	return nil
}
