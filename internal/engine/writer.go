package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-vcf2csv/internal/config"
)

// ErrOutputIsInput reports an output path that would overwrite the input.
var ErrOutputIsInput = errors.New(config.ErrOutputIsInput)

// WriteTable writes the header followed by one record per row.
// Records end with CRLF, as spreadsheet importers expect.
func WriteTable(w io.Writer, columns []string, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCSVWrite, err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Values(columns)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrCSVWrite, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCSVWrite, err)
	}
	return nil
}

// WriteTableFile encodes the table and commits it to path atomically.
func WriteTableFile(path string, columns []string, rows []Row) error {
	var buf bytes.Buffer
	if err := WriteTable(&buf, columns, rows); err != nil {
		return err
	}
	if err := commitFile(path, buf.Bytes()); err != nil {
		return err
	}

	slog.Debug(config.MsgTableWritten,
		config.LogKeyComponent, config.CompWriter,
		config.LogKeyOutput, path,
		config.LogKeyRows, len(rows))
	return nil
}

// commitFile writes data next to path and renames it into place,
// so an interrupted run never leaves a truncated file behind.
func commitFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrOutputCreate, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCSVWrite, err)
	}
	if err = tmp.Chmod(config.FilePermTable); err != nil {
		return fmt.Errorf("%s: %w", config.ErrOutputCreate, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCSVWrite, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrOutputCommit, err)
	}
	return nil
}

// OutputPath derives the table path from an input path or URL by replacing
// the final extension with .csv.
func OutputPath(input string) string {
	if isRemote(input) {
		name := remoteBaseName(input)
		if name == "" {
			return config.DefaultOutputName
		}
		return strings.TrimSuffix(name, filepath.Ext(name)) + config.ExtCSV
	}

	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + config.ExtCSV
}

// samePath reports whether two local paths designate the same file, either
// lexically or, when both exist, on disk.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
