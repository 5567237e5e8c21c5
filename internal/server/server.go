// Package server exposes the last produced table on a localhost HTTP endpoint
// so importers that accept a URL can pull it directly.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-vcf2csv/internal/config"
)

// table is an immutable snapshot of the served CSV.
type table struct {
	data    []byte
	etag    string
	modTime time.Time
}

// TableServer serves the current table. Reads are lock-free; Update swaps
// the whole snapshot.
type TableServer struct {
	current  atomic.Pointer[table]
	Port     string
	FileName string // Suggested download name
}

// NewTableServer creates a server bound to 127.0.0.1:port.
func NewTableServer(port, fileName string) *TableServer {
	return &TableServer{
		Port:     port,
		FileName: fileName,
	}
}

// URL returns the address clients should use.
func (s *TableServer) URL() string {
	return config.SchemeHTTP + "://" + config.LocalhostBindAddr + config.AddrSeparator + s.Port + config.RouteRoot
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *TableServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleTable)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serveErr := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serveErr:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update replaces the served table.
func (s *TableServer) Update(data []byte) {
	sum := sha256.Sum256(data)
	t := &table{
		data:    data,
		etag:    fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:])),
		modTime: time.Now().UTC().Truncate(time.Second),
	}
	s.current.Store(t)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, t.etag,
	)
}

// handleTable serves the snapshot. Conditional requests (If-None-Match,
// If-Modified-Since) and HEAD are handled by http.ServeContent.
func (s *TableServer) handleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	t := s.current.Load()
	if t == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCSV)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, t.etag)
	if s.FileName != "" {
		h.Set(config.HeaderContentDisposition, fmt.Sprintf(config.FormatAttachment, s.FileName))
	}

	http.ServeContent(w, r, s.FileName, t.modTime, bytes.NewReader(t.data))
}
