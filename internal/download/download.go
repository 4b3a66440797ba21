// Package download fetches a URL into a local file.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/timeouts"
	"github.com/Norgate-AV/autoprim/internal/version"
)

// ChunkSize is the read buffer used while streaming the body to disk.
const ChunkSize = 8 * 1024

// Options configures a Downloader.
type Options struct {
	Timeout   time.Duration // whole request; 0 uses timeouts.DownloadTimeout
	UserAgent string        // empty uses version.UserAgent()
	Client    *http.Client  // nil uses a client with Timeout
}

// Downloader performs blocking HTTP(S) downloads.
type Downloader struct {
	client    *http.Client
	userAgent string
	log       logger.LoggerInterface
}

// New creates a Downloader.
func New(log logger.LoggerInterface, opts Options) *Downloader {
	if opts.Timeout <= 0 {
		opts.Timeout = timeouts.DownloadTimeout
	}

	if opts.UserAgent == "" {
		opts.UserAgent = version.UserAgent()
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Downloader{
		client:    client,
		userAgent: opts.UserAgent,
		log:       log,
	}
}

// Download writes the body of url to dest, replacing any existing file. On
// any failure the partially written file is removed.
func (d *Downloader) Download(ctx context.Context, url, dest string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	d.log.Debug("Downloading", slog.String("url", url), slog.String("dest", dest))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to download %s: HTTP %d", url, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dest, closeErr)
		}

		if err != nil {
			if removeErr := os.Remove(dest); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				d.log.Warn("Failed to remove partial download", slog.String("path", dest), slog.Any("error", removeErr))
			}
		}
	}()

	buf := make([]byte, ChunkSize)

	// Hide ReadFrom so the copy goes through buf
	n, err := io.CopyBuffer(struct{ io.Writer }{out}, resp.Body, buf)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	d.log.Debug("Download complete", slog.String("dest", dest), slog.Int64("bytes", n))

	return nil
}
