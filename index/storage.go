package index

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arloliu/gfaidx/errs"
)

// Save writes idx to path.
//
// The file is written to a temporary file in the same directory and renamed over
// path, so readers see either the old file or the complete new one.
func Save(idx *Index, path string, opts ...EncodeOption) error {
	cfg, err := newEncodeConfig(opts)
	if err != nil {
		return err
	}

	data, err := encode(idx, cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errs.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return errs.WrapIO(op, tmpName, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errs.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errs.WrapIO("rename", path, err)
	}

	cfg.logger.Info("index saved",
		slog.String("path", path),
		slog.String("types", idx.Types.String()),
		slog.String("compression", cfg.compression.String()),
		slog.Int("bytes", len(data)))

	return nil
}

// Load reads and decodes the index file at path.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapIO("read", path, err)
	}

	return Decode(data)
}
