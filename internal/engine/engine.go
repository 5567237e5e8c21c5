package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-vcf2csv/internal/config"
)

// ConvertConfig contains all parameters required to perform a conversion.
type ConvertConfig struct {
	Input   string // Local .vcf path or http(s) URL
	Output  string // Destination .csv path; derived from Input when empty
	WebUser string // HTTP Basic Auth Username
	WebPass string // HTTP Basic Auth Password
}

// Result summarises a successful conversion.
type Result struct {
	Output   string // Path the table was written to
	Contacts int    // Number of data rows written
	Table    []byte // Encoded table, as written to Output
}

// Converter is the core service: acquire the card stream, map every
// contact, write the table.
type Converter struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.

	// Columns overrides the table header; config.Columns when nil.
	Columns []string
}

// RunConvert executes the read, map and write pipeline.
// Nothing is written unless every card decoded successfully.
func (c *Converter) RunConvert(ctx context.Context, cfg ConvertConfig) (Result, error) {
	start := c.now()
	output := cfg.Output
	if output == "" {
		output = OutputPath(cfg.Input)
	}

	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyOutput, output,
	)
	log.InfoContext(ctx, config.MsgConvStarted)

	if cfg.Input != "" && !isRemote(cfg.Input) && samePath(cfg.Input, output) {
		return Result{}, fmt.Errorf("%w: %s", ErrOutputIsInput, output)
	}

	// 1. Acquire Data Stream
	reader, err := c.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("%s: %w", config.ErrInputRead, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// 2. Decode and map
	contacts, err := DecodeContacts(ctx, reader)
	if err != nil {
		return Result{}, err
	}

	columns := c.columns()
	rows := MapContacts(contacts, columns)

	// 3. Encode once, then commit the file.
	var buf bytes.Buffer
	if err := WriteTable(&buf, columns, rows); err != nil {
		return Result{}, err
	}
	if err := commitFile(output, buf.Bytes()); err != nil {
		return Result{}, err
	}

	log.Info(config.MsgConvSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, len(contacts)),
			slog.Int(config.LogKeyRows, len(rows)),
			slog.Int64(config.LogKeyDuration, c.now().Sub(start).Milliseconds()),
		),
	)

	return Result{Output: output, Contacts: len(rows), Table: buf.Bytes()}, nil
}

// MapContacts maps each contact in order.
func MapContacts(contacts []Contact, columns []string) []Row {
	rows := make([]Row, 0, len(contacts))
	for _, ct := range contacts {
		rows = append(rows, MapContact(ct, columns))
	}
	return rows
}

// acquireStream opens the local file or downloads the remote export.
func (c *Converter) acquireStream(ctx context.Context, cfg ConvertConfig) (io.ReadCloser, error) {
	switch {
	case cfg.Input == "":
		return nil, errors.New(config.ErrInputEmpty)
	case isRemote(cfg.Input):
		if c.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return c.Fetcher.Fetch(ctx, cfg.Input, cfg.WebUser, cfg.WebPass)
	default:
		return os.Open(cfg.Input)
	}
}

func (c *Converter) columns() []string {
	if c.Columns != nil {
		return c.Columns
	}
	return config.Columns
}

func (c *Converter) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}
