package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Download copies the workbook at source to dest unless dest already
// exists. It reports whether the copy was skipped and how many bytes were
// written.
func Download(ctx context.Context, registry Registry, source, dest string) (bool, int64, error) {
	logger := zerolog.Ctx(ctx).With().Str("dest", dest).Logger()

	if _, err := os.Stat(dest); err == nil {
		logger.Info().Msg("workbook already exists, skipping download")
		return true, 0, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, 0, fmt.Errorf("stat %s: %w", dest, err)
	}

	u, err := url.Parse(source)
	if err != nil {
		return false, 0, fmt.Errorf("invalid source %q: %w", source, err)
	}

	fetcher, err := registry.Create(ctx, u.Scheme)
	if err != nil {
		return false, 0, err
	}

	logger.Info().Str("source", u.Redacted()).Msg("downloading workbook")
	body, err := fetcher.Fetch(ctx, u)
	if err != nil {
		return false, 0, fmt.Errorf("failed to fetch workbook: %w", err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, 0, fmt.Errorf("failed to create data dir: %w", err)
	}

	// Partial downloads must not land at dest: the next run would skip them.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".workbook-*")
	if err != nil {
		return false, 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		return false, 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return false, 0, fmt.Errorf("failed to move workbook into place: %w", err)
	}

	logger.Info().Int64("bytes", n).Msg("workbook saved")
	return false, n, nil
}
