// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CEO-netizen/paqman/paq"
)

var listCmd = &cobra.Command{
	Use:     "list <archive>",
	Aliases: []string{"l", "ls"},
	Short:   "List archive entries in order, without extracting",
	Args:    cobra.ExactArgs(1),
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "opening archive")
	}
	defer f.Close()

	count := 0
	err = paq.List(bufio.NewReaderSize(f, 64<<10), func(name string) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
		count++
	})
	if err != nil {
		return err
	}
	log.Infof("%d entries", count)
	return nil
}
