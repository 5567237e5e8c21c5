package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/tartampluch/go-vcf2csv/internal/config"
	"github.com/tartampluch/go-vcf2csv/internal/engine"
	"github.com/tartampluch/go-vcf2csv/internal/locale"
	"github.com/tartampluch/go-vcf2csv/internal/server"
)

// options holds the parsed command line.
type options struct {
	input  string
	output string
	user   string
	lang   string
	serve  bool
	port   string
	debug  bool
}

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages argument parsing, logging and exit codes.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	opts := options{}
	flag.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.output, config.FlagOutput, "", config.FlagDescOutput)
	flag.StringVar(&opts.user, config.FlagUser, "", config.FlagDescUser)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	flag.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	opts.input = config.DefaultInputFile
	if flag.NArg() > 0 {
		opts.input = flag.Arg(0)
	}

	logCloser := setupLogging(opts.debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	msgs := locale.New(opts.lang)
	if err := run(ctx, opts, msgs); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, msgs.Msg(config.TKeyFailed, map[string]any{"Error": err}))
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run converts the input and, with -serve, keeps the table available over HTTP.
func run(ctx context.Context, opts options, msgs *locale.Localizer) error {
	if opts.serve {
		if err := validatePort(opts.port); err != nil {
			return err
		}
	}

	conv := &engine.Converter{
		Clock:   engine.RealClock{},
		Fetcher: engine.NewHTTPFetcher(),
	}

	res, err := conv.RunConvert(ctx, engine.ConvertConfig{
		Input:   opts.input,
		Output:  opts.output,
		WebUser: opts.user,
		WebPass: engine.LookupPassword(opts.user),
	})
	if err != nil {
		return err
	}

	data := map[string]any{"Path": res.Output}
	if res.Contacts == 0 {
		fmt.Fprintln(os.Stderr, msgs.Msg(config.TKeyConvertedZero, data))
	} else {
		fmt.Fprintln(os.Stderr, msgs.Plural(config.TKeyConverted, res.Contacts, data))
	}

	if !opts.serve {
		return nil
	}

	srv := server.NewTableServer(opts.port, filepath.Base(res.Output))
	srv.Update(res.Table)
	fmt.Fprintln(os.Stderr, msgs.Msg(config.TKeyServing, map[string]any{"URL": srv.URL()}))
	return srv.Start(ctx)
}

// validatePort checks the -port value before any work is done.
func validatePort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < config.MinPort || n > config.MaxPort {
		return fmt.Errorf("%s: %q", config.ErrPortInvalid, port)
	}
	return nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger: stdout plus a log file
// in the user cache directory when one can be created.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on every run.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
