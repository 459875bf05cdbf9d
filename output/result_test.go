package output

import (
	"strings"
	"testing"

	"github.com/blitz-io/blitz-go/sprint"
	"github.com/google/go-cmp/cmp"
)

type headerCall struct {
	txn    *sprint.Transaction
	path   string
	prefix string
}

type spyHeaderPrinter struct {
	calls []headerCall
}

func (s *spyHeaderPrinter) PrintHeaders(txn *sprint.Transaction, path, prefix string) {
	s.calls = append(s.calls, headerCall{txn: txn, path: path, prefix: prefix})
}

type contentCall struct {
	txn    *sprint.Transaction
	prefix string
}

type spyContentPrinter struct {
	calls []contentCall
}

func (s *spyContentPrinter) PrintContent(txn *sprint.Transaction, prefix string) {
	s.calls = append(s.calls, contentCall{txn: txn, prefix: prefix})
}

type printerFixture struct {
	console *writeRecorder
	headers *spyHeaderPrinter
	content *spyContentPrinter
	printer Printer
}

func newPrinterFixture(options *Options) *printerFixture {
	f := &printerFixture{
		console: &writeRecorder{},
		headers: &spyHeaderPrinter{},
		content: &spyContentPrinter{},
	}
	f.printer = NewResultPrinter(ResultPrinterConfig{
		Writer:         f.console,
		Options:        options,
		HeaderPrinter:  f.headers,
		ContentPrinter: f.content,
	})
	return f
}

func TestResultPrinter_NoDumpHeaderNoVerbose(t *testing.T) {
	// Setup
	f := newPrinterFixture(&Options{EnableColor: true})

	// Exercise
	if err := f.printer.PrintResult(mockedResult(1)); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := []string{
		"Transaction time \x1b[32m394 ms\x1b[0m\n",
		"\n",
		"> GET www.example.com\n",
		"< 200 OK in \x1b[32m394 ms\x1b[0m\n",
		"\n",
	}
	if diff := cmp.Diff(expected, f.console.writes); diff != "" {
		t.Errorf("unexpected console writes (-expected +actual):\n%s", diff)
	}
	if len(f.headers.calls) != 0 {
		t.Errorf("unexpected header dumps: %d", len(f.headers.calls))
	}
	if len(f.content.calls) != 0 {
		t.Errorf("unexpected content dumps: %d", len(f.content.calls))
	}
}

func TestResultPrinter_Flags(t *testing.T) {
	testCases := []struct {
		title           string
		options         Options
		expectedHeaders int
		expectedContent int
	}{
		{
			title:           "Both dump-header and verbose",
			options:         Options{DumpHeader: mockedPath, Verbose: true},
			expectedHeaders: 2,
			expectedContent: 2,
		},
		{
			title:           "Only verbose",
			options:         Options{Verbose: true},
			expectedHeaders: 0,
			expectedContent: 2,
		},
		{
			title:           "Only dump-header",
			options:         Options{DumpHeader: mockedPath},
			expectedHeaders: 2,
			expectedContent: 0,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			// Setup
			options := tt.options
			f := newPrinterFixture(&options)
			result := mockedResult(1)
			result.Schema = sprint.SchemaLegacy

			// Exercise
			if err := f.printer.PrintResult(result); err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}

			// Verify
			if len(f.headers.calls) != tt.expectedHeaders {
				t.Errorf("unexpected header dumps: expected=%d, actual=%d", tt.expectedHeaders, len(f.headers.calls))
			}
			if len(f.content.calls) != tt.expectedContent {
				t.Errorf("unexpected content dumps: expected=%d, actual=%d", tt.expectedContent, len(f.content.calls))
			}
			// legacy results have no summary line but keep the digest
			expected := []string{
				"> GET www.example.com\n",
				"< 200 OK in 394 ms\n",
				"\n",
			}
			if diff := cmp.Diff(expected, f.console.writes); diff != "" {
				t.Errorf("unexpected console writes (-expected +actual):\n%s", diff)
			}
		})
	}
}

func TestResultPrinter_CallOrderPerStep(t *testing.T) {
	// Setup
	f := newPrinterFixture(&Options{DumpHeader: "-", Verbose: true})
	result := mockedResult(3)

	// Exercise
	if err := f.printer.PrintResult(result); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if len(f.headers.calls) != 6 {
		t.Fatalf("unexpected header dumps: expected=6, actual=%d", len(f.headers.calls))
	}
	if len(f.content.calls) != 6 {
		t.Fatalf("unexpected content dumps: expected=6, actual=%d", len(f.content.calls))
	}
	for i := range result.Steps {
		step := &result.Steps[i]
		request, response := f.headers.calls[2*i], f.headers.calls[2*i+1]
		if request.txn != &step.Request || request.prefix != "> " || request.path != "-" {
			t.Errorf("step %d: unexpected request dump: %+v", i, request)
		}
		if response.txn != &step.Response || response.prefix != "< " || response.path != "-" {
			t.Errorf("step %d: unexpected response dump: %+v", i, response)
		}
		if f.content.calls[2*i].txn != &step.Request || f.content.calls[2*i].prefix != "> " {
			t.Errorf("step %d: unexpected request content dump: %+v", i, f.content.calls[2*i])
		}
		if f.content.calls[2*i+1].txn != &step.Response || f.content.calls[2*i+1].prefix != "< " {
			t.Errorf("step %d: unexpected response content dump: %+v", i, f.content.calls[2*i+1])
		}
	}
	var digests int
	for _, w := range f.console.writes {
		if w == "> GET www.example.com\n" {
			digests++
		}
	}
	if digests != 3 {
		t.Errorf("unexpected number of digests: expected=3, actual=%d", digests)
	}
}

func TestResultPrinter_NoSteps(t *testing.T) {
	f := newPrinterFixture(&Options{})
	err := f.printer.PrintResult(&sprint.Result{Schema: sprint.SchemaTimed})
	if err == nil {
		t.Fatalf("expected an error for a result without steps")
	}
	if len(f.console.writes) != 0 {
		t.Errorf("nothing should be printed: %q", f.console.writes)
	}
}

func TestResultPrinter_DefaultCollaborators(t *testing.T) {
	// Setup
	var buffer strings.Builder
	printer := NewResultPrinter(ResultPrinterConfig{
		Writer:  &buffer,
		Options: &Options{DumpHeader: "-", Verbose: true},
	})
	result := mockedResult(1)
	result.Steps[0].Request.Headers = result.Steps[0].Request.Headers[:2]
	result.Steps[0].Response.Line = ""
	result.Steps[0].Response.Headers = nil
	result.Steps[0].Response.Content = "hello\nworld\n"

	// Exercise
	if err := printer.PrintResult(result); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	expected := strings.Join([]string{
		"Transaction time 394 ms\n",
		"\n",
		"> GET / HTTP/1.1\n",
		"> User-Agent: blitz.io; 5f691b@11.22.33.250\r\n",
		"> Host: blitz.io\r\n",
		"\n",
		"< 200 OK\n",
		"\n",
		"< hello\n",
		"< world\n",
		"\n",
		"> GET www.example.com\n",
		"< 200 OK in 394 ms\n",
		"\n",
	}, "")
	if diff := cmp.Diff(expected, buffer.String()); diff != "" {
		t.Errorf("unexpected output (-expected +actual):\n%s", diff)
	}
}

func TestResultPrinter_Timeline(t *testing.T) {
	testCases := []struct {
		title    string
		steps    int
		expected bool
	}{
		{title: "Multiple steps", steps: 3, expected: true},
		{title: "Single step", steps: 1, expected: false},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			var buffer strings.Builder
			printer := NewResultPrinter(ResultPrinterConfig{
				Writer:  &buffer,
				Options: &Options{Timeline: true},
			})

			result := mockedResult(tt.steps)
			for i := range result.Steps {
				result.Steps[i].Duration = sprint.Seconds(0.1 * float64(i+1))
			}

			if err := printer.PrintResult(result); err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}

			if actual := strings.Contains(buffer.String(), "step duration (ms)"); actual != tt.expected {
				t.Errorf("unexpected timeline: expected=%v, actual=%v\n%s", tt.expected, actual, buffer.String())
			}
		})
	}
}
