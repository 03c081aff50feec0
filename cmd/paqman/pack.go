// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CEO-netizen/paqman/paq"
	"github.com/CEO-netizen/paqman/paq/paqdata"
)

var packCmd = &cobra.Command{
	Use:     "pack <input> [output]",
	Aliases: []string{"c", "compress"},
	Short:   "Pack a file or directory into a .paq archive",
	Long: `Pack archives a file, or a whole directory tree, into a single
compressed block. Directory trees are walked in lexical order; symlinks
and special files are skipped. Omitting the output path writes
<basename>.paq in the current directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPack,
}

func init() {
	packCmd.Flags().IntP("level", "l", 5, "compression effort 0-5 (0 = store)")
	packCmd.Flags().String("codec", "flate", "compression codec: store, flate, lz4, zstd")
	packCmd.Flags().String("checksum", "sha256",
		"segment trailer checksum: none, sha256, sha512, blake2s, blake2b, sha3-256, sha3-512")
	viper.BindPFlag(keyLevel, packCmd.Flags().Lookup("level"))
	viper.BindPFlag(keyCodec, packCmd.Flags().Lookup("codec"))
	viper.BindPFlag(keyChecksum, packCmd.Flags().Lookup("checksum"))

	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := filepath.Base(filepath.Clean(input)) + ".paq"
	if len(args) == 2 {
		output = args[1]
	}

	level := viper.GetInt(keyLevel)
	if level < paqdata.MinLevel || level > paqdata.MaxLevel {
		return errors.Errorf("invalid level %d: use 0-5", level)
	}
	codec, err := codecScheme(viper.GetString(keyCodec))
	if err != nil {
		return err
	}
	csum, err := checksumScheme(viper.GetString(keyChecksum))
	if err != nil {
		return err
	}

	log.Infof("packing %s -> %s (level %d, %s)", input, output, level, codec)

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "creating archive")
	}
	err = paq.Pack(f, input, level,
		paq.WithCompression(codec),
		paq.WithChecksum(csum),
		paq.WithChunkSize(viper.GetInt(keyChunkSize)),
	)
	if err != nil {
		f.Close()
		// A failed pack leaves no defined state behind; discard it.
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing archive")
	}
	log.Infof("packed %s", output)
	return nil
}
