// Package imagefetch pulls new camera photos onto the local disk, either from
// an FTP drop folder or from the SpyPoint cloud API. Both sources land photos
// in the same layout the analyzer reads: one subdirectory per camera under
// the images directory.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/errors"
	"github.com/willclo1/SpyPointAnalysis/internal/logging"
)

// Result reports what a fetch run did.
type Result struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// FTPFetcher mirrors new photos from an FTP server that cameras upload to.
type FTPFetcher struct {
	settings  *conf.FTPSettings
	imagesDir string
	logger    *slog.Logger
}

// NewFTPFetcher returns a fetcher for the configured server.
func NewFTPFetcher(settings *conf.FTPSettings, imagesDir string) *FTPFetcher {
	return &FTPFetcher{
		settings:  settings,
		imagesDir: imagesDir,
		logger:    logging.ForService("imagefetch"),
	}
}

func (f *FTPFetcher) connect() (*ftp.ServerConn, error) {
	timeout := time.Duration(f.settings.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	addr := fmt.Sprintf("%s:%d", f.settings.Host, f.settings.Port)
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(timeout))
	if err != nil {
		return nil, errors.New(err).
			Component("imagefetch").
			Category(errors.CategoryNetwork).
			Context("host", f.settings.Host).
			Build()
	}

	if err := conn.Login(f.settings.Username, f.settings.Password); err != nil {
		_ = conn.Quit()
		return nil, errors.New(err).
			Component("imagefetch").
			Category(errors.CategoryNetwork).
			Context("host", f.settings.Host).
			Build()
	}
	return conn, nil
}

// Fetch downloads photos not yet present locally. Each remote subdirectory of
// the base path is treated as one camera.
func (f *FTPFetcher) Fetch(ctx context.Context) (Result, error) {
	var result Result

	conn, err := f.connect()
	if err != nil {
		return result, err
	}
	defer func() { _ = conn.Quit() }()

	entries, err := conn.List(f.settings.BasePath)
	if err != nil {
		return result, fmt.Errorf("failed to list %s: %w", f.settings.BasePath, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.Type != ftp.EntryTypeFolder {
			continue
		}
		if err := f.fetchCamera(ctx, conn, entry.Name, &result); err != nil {
			f.logger.Error("camera fetch failed", "camera", entry.Name, "error", err)
			result.Failed++
		}
	}

	f.logger.Info("ftp fetch complete",
		"downloaded", result.Downloaded,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

func (f *FTPFetcher) fetchCamera(ctx context.Context, conn *ftp.ServerConn, camera string, result *Result) error {
	remoteDir := path.Join(f.settings.BasePath, camera)
	entries, err := conn.List(remoteDir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", remoteDir, err)
	}

	localDir := filepath.Join(f.imagesDir, camera)
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", localDir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Type != ftp.EntryTypeFile || !IsImage(entry.Name) {
			continue
		}

		localPath := filepath.Join(localDir, entry.Name)
		if _, err := os.Stat(localPath); err == nil {
			result.Skipped++
			continue
		}

		if err := f.download(conn, path.Join(remoteDir, entry.Name), localPath); err != nil {
			f.logger.Error("download failed", "camera", camera, "file", entry.Name, "error", err)
			result.Failed++
			continue
		}
		result.Downloaded++
		f.logger.Debug("downloaded photo", "camera", camera, "file", entry.Name)
	}
	return nil
}

func (f *FTPFetcher) download(conn *ftp.ServerConn, remotePath, localPath string) error {
	resp, err := conn.Retr(remotePath)
	if err != nil {
		return fmt.Errorf("failed to retrieve %s: %w", remotePath, err)
	}
	defer resp.Close()

	tmpPath := localPath + ".part"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(file, resp); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, localPath)
}

// IsImage reports whether the filename looks like a camera photo.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
