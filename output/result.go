package output

import (
	"fmt"
	"io"
	"time"

	"github.com/blitz-io/blitz-go/sprint"
	"github.com/pkg/errors"
)

type ResultPrinterConfig struct {
	Writer  io.Writer
	Options *Options

	// Optional. Default to a HeaderDumper and a ContentDumper on Writer.
	HeaderPrinter  HeaderPrinter
	ContentPrinter ContentPrinter
}

// ResultPrinter prints the console report of a sprint.
type ResultPrinter struct {
	writer  io.Writer
	options *Options
	format  *formatter
	headers HeaderPrinter
	content ContentPrinter
}

func NewResultPrinter(config ResultPrinterConfig) Printer {
	options := config.Options
	if options == nil {
		options = &Options{}
	}
	headers := config.HeaderPrinter
	if headers == nil {
		headers = NewHeaderDumper(HeaderDumperConfig{
			Writer:      config.Writer,
			EnableColor: options.EnableColor,
		})
	}
	content := config.ContentPrinter
	if content == nil {
		content = NewContentDumper(config.Writer, options.ContentLimit)
	}
	return &ResultPrinter{
		writer:  config.Writer,
		options: options,
		format:  newFormatter(options.EnableColor),
		headers: headers,
		content: content,
	}
}

func (p *ResultPrinter) PrintResult(result *sprint.Result) error {
	if len(result.Steps) == 0 {
		return errors.New("sprint result has no steps")
	}

	if d, ok := result.TotalDuration(); ok {
		fmt.Fprintf(p.writer, "Transaction time %s\n", p.format.highlight(formatMilliseconds(d)))
		fmt.Fprintln(p.writer)
	}

	for i := range result.Steps {
		p.printStep(&result.Steps[i])
	}

	if p.options.Timeline {
		p.printTimeline(result)
	}
	return nil
}

func (p *ResultPrinter) printStep(step *sprint.Step) {
	if p.options.DumpHeader != "" {
		p.headers.PrintHeaders(&step.Request, p.options.DumpHeader, "> ")
		p.headers.PrintHeaders(&step.Response, p.options.DumpHeader, "< ")
	}
	if p.options.Verbose {
		p.content.PrintContent(&step.Request, "> ")
		p.content.PrintContent(&step.Response, "< ")
	}

	fmt.Fprintf(p.writer, "> %s %s\n", step.Request.Method, step.Request.URL)
	fmt.Fprintf(p.writer, "< %d %s in %s\n",
		step.Response.Status,
		step.Response.Message,
		p.format.highlight(formatMilliseconds(step.Duration)))
	fmt.Fprintln(p.writer)
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%d ms", sprint.Milliseconds(d))
}
