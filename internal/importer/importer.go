package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/logging"
	"go.uber.org/zap"
)

// Uploader is the import endpoint.
type Uploader interface {
	ImportProducts(ctx context.Context, token, filename string, r io.Reader) (api.ImportResult, error)
}

// Importer checks and uploads product spreadsheets.
type Importer struct {
	uploader Uploader
	logger   *zap.Logger
}

// New returns an importer sending files to uploader.
func New(uploader Uploader, logger *zap.Logger) *Importer {
	return &Importer{uploader: uploader, logger: logging.OrNop(logger)}
}

// Result is the outcome of Run.
type Result struct {
	Preview  Preview
	Uploaded bool
	Server   api.ImportResult
}

// Run reads path, previews it and, unless dryRun, uploads it. A .csv is
// uploaded as an equivalent .xlsx. The preview never blocks the upload: the
// backend decides which rows it accepts.
func (im *Importer) Run(ctx context.Context, token, path string, dryRun bool) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	rows, err := ReadRows(path, bytes.NewReader(data))
	if err != nil {
		return Result{}, err
	}
	preview := Parse(rows)
	im.logger.Info("spreadsheet read",
		zap.String("file", filepath.Base(path)),
		zap.Int("rows", len(preview.Rows)),
		zap.Int("row_errors", len(preview.Errors)))

	res := Result{Preview: preview}
	if dryRun {
		return res, nil
	}

	name := path
	if ext := filepath.Ext(path); strings.EqualFold(ext, ".csv") {
		data, err = ToXLSX(rows)
		if err != nil {
			return res, fmt.Errorf("converting %s: %w", filepath.Base(path), err)
		}
		name = strings.TrimSuffix(path, ext) + ".xlsx"
		im.logger.Debug("csv converted for upload", zap.String("file", filepath.Base(name)))
	}

	server, err := im.uploader.ImportProducts(ctx, token, name, bytes.NewReader(data))
	if err != nil {
		im.logger.Error("import upload failed", zap.String("file", filepath.Base(path)), zap.Error(err))
		return res, fmt.Errorf("uploading %s: %w", filepath.Base(path), err)
	}
	im.logger.Info("import done",
		zap.Int("imported", server.ImportedCount),
		zap.Int("server_errors", len(server.Errors)))

	res.Uploaded = true
	res.Server = server
	return res, nil
}
