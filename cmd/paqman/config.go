// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/CEO-netizen/paqman/paq"
	"github.com/CEO-netizen/paqman/paq/paqdata"
)

// Configuration keys. Precedence: changed flags > PAQMAN_* environment
// variables > config file > flag defaults.
const (
	keyLevel     = "level"
	keyCodec     = "codec"
	keyChecksum  = "checksum"
	keyChunkSize = "chunk_size"
)

func loadConfig(path string) error {
	viper.SetDefault(keyChunkSize, paq.DefaultChunkSize)

	viper.SetEnvPrefix("paqman")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	return errors.Wrapf(viper.ReadInConfig(), "reading config %q", path)
}

func codecScheme(name string) (paqdata.CompressionScheme, error) {
	switch strings.ToLower(name) {
	case "none", "store":
		return paqdata.CompressionNone, nil
	case "flate", "deflate":
		return paqdata.CompressionFlate, nil
	case "lz4":
		return paqdata.CompressionLZ4, nil
	case "zstd", "zstandard":
		return paqdata.CompressionZstd, nil
	}
	return 0, errors.Errorf("unknown codec %q (use store, flate, lz4, or zstd)", name)
}

func checksumScheme(name string) (paqdata.ChecksumScheme, error) {
	switch strings.ToLower(name) {
	case "none", "null":
		return paqdata.ChecksumNULL, nil
	case "sha256":
		return paqdata.ChecksumSHA2_256, nil
	case "sha512":
		return paqdata.ChecksumSHA2_512, nil
	case "blake2s":
		return paqdata.ChecksumBLAKE2s, nil
	case "blake2b":
		return paqdata.ChecksumBLAKE2b, nil
	case "sha3-256":
		return paqdata.ChecksumSHA3_256, nil
	case "sha3-512":
		return paqdata.ChecksumSHA3_512, nil
	}
	return 0, errors.Errorf("unknown checksum %q", name)
}
