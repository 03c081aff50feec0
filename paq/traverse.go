// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paq

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/CEO-netizen/paqman/paq/paqdata"
)

// SinkFactory supplies the destination for one segment's payload, keyed by
// the segment's stored name. Extraction factories return real file sinks;
// listing uses a discard sink. A factory error aborts the traversal.
type SinkFactory func(name string) (io.WriteCloser, error)

// Traverse reads every segment of the archive in src strictly in order,
// streaming each payload into the sink obtained from sinks.
//
// This is the shared core of Unpack and List. Both do identical stream
// consumption work: segment boundaries are only discoverable by decoding
// the payload through the block's codec, so a lister cannot skip ahead.
//
// Any failure aborts the whole traversal; there is no recovery at segment
// N+1 after a corrupt segment N.
func Traverse(src io.Reader, sinks SinkFactory) error {
	br, err := paqdata.NewBlockReader(src)
	if err != nil {
		return err
	}

	buf := make([]byte, DefaultChunkSize)
	for {
		name, err := br.Next()
		if err == io.EOF {
			return br.Close()
		}
		if err != nil {
			br.Close()
			return err
		}
		sink, err := sinks(name)
		if err != nil {
			br.Close()
			return errors.Wrapf(err, "creating sink for %q", name)
		}
		if _, err := io.CopyBuffer(sink, br.Payload(), buf); err != nil {
			sink.Close()
			br.Close()
			return errors.Wrapf(err, "extracting %q", name)
		}
		if err := sink.Close(); err != nil {
			br.Close()
			return errors.Wrapf(err, "closing sink for %q", name)
		}
	}
}

// Unpack extracts the archive in src beneath dest, creating dest and any
// parent directories as needed.
//
// Segment names that repeat overwrite the earlier file. Names that are
// absolute or would land outside dest are rejected. Files extracted before
// a failure are left in place: a failed unpack is at-least-the-prefix-
// completed, not atomic.
func Unpack(src io.Reader, dest string) error {
	if err := os.MkdirAll(dest, 0777); err != nil {
		return errors.Wrap(err, "making destination dir")
	}
	return Traverse(src, func(name string) (io.WriteCloser, error) {
		abs, err := destPath(dest, name)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0777); err != nil {
			return nil, errors.Wrapf(err, "making dir for %q", name)
		}
		f, err := os.Create(abs)
		if err != nil {
			return nil, errors.Wrapf(err, "creating %q", name)
		}
		return f, nil
	})
}

// destPath joins name beneath dest, rejecting names that would escape it.
func destPath(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("segment name %q escapes destination", name)
	}
	return filepath.Join(dest, clean), nil
}

// List enumerates segment names in archive order, invoking visit for each.
// It performs the same payload consumption as Unpack, just into a discard
// sink: no file is ever created or modified.
func List(src io.Reader, visit func(name string)) error {
	return Traverse(src, func(name string) (io.WriteCloser, error) {
		visit(name)
		return discardSink{}, nil
	})
}

// discardSink accepts and forgets bytes.
type discardSink struct{}

func (discardSink) Write(p []byte) (int, error) { return len(p), nil }
func (discardSink) Close() error                { return nil }
