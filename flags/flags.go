package flags

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/blitz-io/blitz-go/exchange"
	"github.com/blitz-io/blitz-go/input"
	"github.com/blitz-io/blitz-go/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	defaultRegion       = "california"
	defaultTimeout      = "30s"
	defaultContentLimit = "4K"
	defaultLogLevel     = "warn"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	// ReplayFile names a stored result to print instead of running a sprint.
	ReplayFile string
	LogLevel   zerolog.Level

	PrintHelp     bool
	PrintVersion  bool
	PrintLicenses bool
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// headerList collects every occurrence of a repeatable flag.
// getopt's list flags split on commas, which header values may contain.
type headerList []string

func (l *headerList) Set(value string, opt getopt.Option) error {
	*l = append(*l, value)
	return nil
}

func (l *headerList) String() string {
	return strings.Join(*l, ", ")
}

func Parse(args []string) ([]string, FlagSet, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminal terminalInfo) ([]string, FlagSet, *OptionSet, error) {
	inputOptions := input.Options{Region: getEnv(envRegion, defaultRegion)}
	outputOptions := output.Options{}
	exchangeOptions := exchange.Options{}
	optionSet := &OptionSet{}
	var headers headerList
	var ignoreStdin bool
	auth := ""
	status := ""
	timeout := getEnv(envTimeout, defaultTimeout)
	contentLimit := defaultContentLimit
	logLevel := getEnv(envLogLevel, defaultLogLevel)

	flagSet := getopt.New()
	flagSet.SetParameters("URL [URL ...]")
	flagSet.StringVarLong(&inputOptions.Method, "request", 'X', "HTTP method used by every step", "METHOD")
	flagSet.VarLong(&headers, "header", 'H', "header sent by every step, can be repeated", "'NAME: VALUE'")
	flagSet.StringVarLong(&inputOptions.Data, "data", 'd', "request body, @FILE reads it from FILE", "DATA")
	flagSet.StringVarLong(&inputOptions.UserAgent, "user-agent", 'A', "User-Agent header", "AGENT")
	flagSet.StringVarLong(&auth, "user", 'u', "basic auth credentials, the password is asked when omitted", "USER[:PASSWORD]")
	flagSet.StringVarLong(&inputOptions.Region, "region", 'r', "region the sprint is reported from", "REGION")
	flagSet.StringVarLong(&timeout, "timeout", 'T', "timeout of each step, in seconds or as a duration", "TIMEOUT")
	flagSet.StringVarLong(&status, "status", 's', "HTTP status every step is expected to answer", "CODE")
	flagSet.StringVarLong(&outputOptions.DumpHeader, "dump-header", 'D', "dump raw headers to FILE, - for the console", "FILE")
	flagSet.BoolVarLong(&outputOptions.Verbose, "verbose", 'v', "print request and response content")
	flagSet.StringVarLong(&contentLimit, "content-limit", 0, "content printed per transaction in verbose mode, 0 for no limit", "SIZE")
	flagSet.BoolVarLong(&outputOptions.Timeline, "timeline", 0, "plot the duration of each step")
	flagSet.StringVarLong(&optionSet.ReplayFile, "replay", 0, "print a stored result instead of running a sprint", "FILE")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 'o', "store the result as JSON in FILE", "FILE")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite the --output file if it exists")
	flagSet.BoolVarLong(&exchangeOptions.SkipVerify, "insecure", 0, "skip TLS certificate verification")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.StringVarLong(&logLevel, "log-level", 0, "diagnostics level: debug, info, warn or error", "LEVEL")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicenses, "licenses", 0, "print licenses and exit")
	flagSet.BoolVarLong(&optionSet.PrintHelp, "help", 'h', "print this help and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, nil, nil, err
	}

	// Check stdin
	if !ignoreStdin && !terminal.stdinIsTerminal {
		inputOptions.ReadStdin = true
	}

	inputOptions.Headers = []string(headers)

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, nil, nil, err
	}
	exchangeOptions.Timeout = d

	// Parse --status
	if status != "" {
		code, err := parseStatus(status)
		if err != nil {
			return nil, nil, nil, err
		}
		exchangeOptions.ExpectedStatus = code
	}

	// Parse --user
	if auth != "" {
		authOptions, err := parseAuth(auth)
		if err != nil {
			return nil, nil, nil, err
		}
		exchangeOptions.Auth = *authOptions
	}

	// Parse --content-limit
	limit, err := parseContentLimit(contentLimit)
	if err != nil {
		return nil, nil, nil, err
	}
	outputOptions.ContentLimit = limit

	// Parse --log-level
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		return nil, nil, nil, errors.Errorf("Value of --log-level must be one of debug, info, warn or error: %v", logLevel)
	}
	optionSet.LogLevel = level

	// Color
	outputOptions.EnableColor = terminal.stdoutIsTerminal && getEnv(envNoColor, "") == ""

	optionSet.InputOptions = inputOptions
	optionSet.ExchangeOptions = exchangeOptions
	optionSet.OutputOptions = outputOptions
	return flagSet.Args(), flagSet, optionSet, nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseStatus(status string) (int, error) {
	code, err := strconv.Atoi(status)
	if err != nil || code < 100 || code > 999 {
		return 0, errors.Errorf("Value of --status must be an HTTP status code: %v", status)
	}
	return code, nil
}

func parseContentLimit(limit string) (uint64, error) {
	if n, err := strconv.ParseUint(limit, 10, 64); err == nil {
		return n, nil
	}
	n, err := bytefmt.ToBytes(limit)
	if err != nil {
		return 0, errors.Wrapf(err, "Value of --content-limit must be a byte size like 512 or 4K: %v", limit)
	}
	return n, nil
}

func parseAuth(auth string) (*exchange.AuthOptions, error) {
	var username, password string
	colonIndex := strings.Index(auth, ":")
	if colonIndex == -1 {
		username = auth
		p, err := askPassword(username)
		if err != nil {
			return nil, err
		}
		password = p
	} else {
		username = auth[:colonIndex]
		password = auth[colonIndex+1:]
	}

	return &exchange.AuthOptions{
		Enabled:  true,
		UserName: username,
		Password: password,
	}, nil
}
