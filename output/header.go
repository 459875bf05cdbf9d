package output

import (
	"fmt"
	"io"
	"os"

	"github.com/blitz-io/blitz-go/sprint"
	"github.com/pkg/errors"
)

// WriteHeaders writes the status line of txn, one "Name: Value" line per
// header in order, and a blank line.
func WriteHeaders(w io.Writer, txn *sprint.Transaction) error {
	if _, err := fmt.Fprintf(w, "%s\n", txn.StatusLine()); err != nil {
		return errors.Wrap(err, "writing status line")
	}
	for _, field := range txn.Headers {
		if _, err := fmt.Fprintf(w, "%s: %s\n", field.Name, field.Value); err != nil {
			return errors.Wrapf(err, "writing header '%s'", field.Name)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return errors.Wrap(err, "writing end of headers")
	}
	return nil
}

// writeHeadersToFile writes txn to file and closes it, whatever happens.
func writeHeadersToFile(file io.WriteCloser, txn *sprint.Transaction) (err error) {
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing header dump")
		}
	}()
	return WriteHeaders(file, txn)
}

type HeaderDumperConfig struct {
	Writer      io.Writer
	FileSystem  FileSystem
	EnableColor bool
}

// HeaderDumper writes header blocks to the console or to a file.
// Failures to use a file are reported as a single warning line on the
// console and never returned.
type HeaderDumper struct {
	writer io.Writer
	fs     FileSystem
	format *formatter
}

func NewHeaderDumper(config HeaderDumperConfig) *HeaderDumper {
	fs := config.FileSystem
	if fs == nil {
		fs = osFileSystem{}
	}
	return &HeaderDumper{
		writer: config.Writer,
		fs:     fs,
		format: newFormatter(config.EnableColor),
	}
}

// PrintHeaders dumps txn to path. A path of "-" means the console, where
// every line is prefixed with prefix.
func (d *HeaderDumper) PrintHeaders(txn *sprint.Transaction, path, prefix string) {
	d.resolve(path).dumpHeaders(txn, prefix)
}

type destination interface {
	dumpHeaders(txn *sprint.Transaction, prefix string)
}

func (d *HeaderDumper) resolve(path string) destination {
	if path == "-" {
		return &consoleDestination{writer: d.writer}
	}
	if _, err := d.fs.Stat(path); err == nil {
		if !d.fs.Writable(path) {
			return &unwritableDestination{dumper: d, path: path}
		}
		return &appendDestination{dumper: d, path: path}
	}
	return &createDestination{dumper: d, path: path}
}

func (d *HeaderDumper) warnf(format string, a ...interface{}) {
	fmt.Fprintln(d.writer, d.format.warn(fmt.Sprintf(format, a...)))
}

type consoleDestination struct {
	writer io.Writer
}

// One write per line.
func (c *consoleDestination) dumpHeaders(txn *sprint.Transaction, prefix string) {
	fmt.Fprintln(c.writer, prefix+txn.StatusLine())
	for _, field := range txn.Headers {
		fmt.Fprint(c.writer, prefix+field.Name+": "+field.Value+"\r\n")
	}
	fmt.Fprintln(c.writer)
}

type unwritableDestination struct {
	dumper *HeaderDumper
	path   string
}

func (u *unwritableDestination) dumpHeaders(*sprint.Transaction, string) {
	u.dumper.warnf("Existent file it's not writable - %s", u.path)
}

type appendDestination struct {
	dumper *HeaderDumper
	path   string
}

func (a *appendDestination) dumpHeaders(txn *sprint.Transaction, _ string) {
	file, err := a.dumper.fs.OpenFile(a.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		a.dumper.warnf("Existent file it's not writable - %s", a.path)
		return
	}
	if err := writeHeadersToFile(file, txn); err != nil {
		a.dumper.warnf("Failed to write headers - %s", a.path)
	}
}

type createDestination struct {
	dumper *HeaderDumper
	path   string
}

func (c *createDestination) dumpHeaders(txn *sprint.Transaction, _ string) {
	file, err := c.dumper.fs.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		c.dumper.warnf("No such file or directory - %s", c.path)
		return
	}
	if err := writeHeadersToFile(file, txn); err != nil {
		c.dumper.warnf("Failed to write headers - %s", c.path)
	}
}
