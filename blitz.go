package blitz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/blitz-io/blitz-go/exchange"
	"github.com/blitz-io/blitz-go/flags"
	"github.com/blitz-io/blitz-go/input"
	"github.com/blitz-io/blitz-go/output"
	"github.com/blitz-io/blitz-go/sprint"
	"github.com/blitz-io/blitz-go/version"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Options struct {
	// Transport is applied to the HTTP client used by every step.
	Transport http.RoundTripper
}

func Main(options *Options) error {
	return run(os.Args, os.Stdin, os.Stdout, os.Stderr, options)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, options *Options) error {
	// Parse flags
	args, usage, optionSet, err := flags.Parse(args)
	if err != nil {
		return err
	}
	inputOptions := optionSet.InputOptions
	exchangeOptions := optionSet.ExchangeOptions
	outputOptions := optionSet.OutputOptions

	// Informational flags
	if optionSet.PrintHelp {
		usage.PrintUsage(stdout)
		return nil
	}
	if optionSet.PrintVersion {
		fmt.Fprintf(stdout, "blitz-go %s\n", version.Current())
		return nil
	}
	if optionSet.PrintLicenses {
		version.PrintLicenses(stdout)
		return nil
	}

	logger := newLogger(stderr, optionSet.LogLevel)
	exchangeOptions.Logger = logger
	if options != nil {
		exchangeOptions.Transport = options.Transport
	}

	// Obtain the result, either stored or from a new sprint
	var result *sprint.Result
	var runErr error
	if optionSet.ReplayFile != "" {
		result, err = replay(optionSet.ReplayFile)
		if err != nil {
			return err
		}
	} else {
		plan, err := input.ParseArgs(args, stdin, &inputOptions)
		if _, ok := errors.Cause(err).(*input.UsageError); ok {
			usage.PrintUsage(stderr)
			return err
		}
		if err != nil {
			return err
		}
		result, runErr = exchange.Run(context.Background(), plan, &exchangeOptions)
		if result == nil {
			return runErr
		}
	}

	// Store the result
	if outputOptions.OutputFile != "" {
		snapshot := output.NewSnapshotWriter(&outputOptions)
		if err := snapshot.Write(result); err != nil {
			return err
		}
		logger.Info().Str("file", snapshot.Filename()).Msg("result stored")
	}

	// Print the result
	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	printer := output.NewResultPrinter(output.ResultPrinterConfig{
		Writer:  writer,
		Options: &outputOptions,
	})
	if err := printer.PrintResult(result); err != nil {
		return err
	}

	// A sprint stopped by an unexpected status is still reported
	return runErr
}

func replay(path string) (*sprint.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening result file")
	}
	defer file.Close()
	return sprint.Decode(file)
}

func newLogger(w io.Writer, level zerolog.Level) *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &logger
}
