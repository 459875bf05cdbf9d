package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"code.cloudfoundry.org/bytefmt"
	"github.com/blitz-io/blitz-go/sprint"
	"github.com/pkg/errors"
)

type ContentDumper struct {
	writer io.Writer
	limit  uint64
}

func NewContentDumper(writer io.Writer, limit uint64) *ContentDumper {
	return &ContentDumper{
		writer: writer,
		limit:  limit,
	}
}

// PrintContent prints every line of the content prefixed with prefix,
// followed by a blank line. Empty content prints nothing.
func (d *ContentDumper) PrintContent(txn *sprint.Transaction, prefix string) {
	content := txn.Content
	if content == "" {
		return
	}

	// Binary content is summarized rather than dumped to the terminal
	if !utf8.ValidString(content) {
		fmt.Fprintf(d.writer, "%s[binary %s]\n", prefix, bytefmt.ByteSize(uint64(len(content))))
		fmt.Fprintln(d.writer)
		return
	}

	if isJSON(txn.Headers.Get("Content-Type")) {
		if indented, err := indentJSON(content); err == nil {
			content = indented
		}
	}

	content, rest := truncate(content, d.limit)
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		fmt.Fprintln(d.writer, prefix+strings.TrimSuffix(line, "\r"))
	}
	if rest > 0 {
		fmt.Fprintf(d.writer, "%s[... %s more]\n", prefix, bytefmt.ByteSize(uint64(rest)))
	}
	fmt.Fprintln(d.writer)
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = contentType[:semicolon]
	}

	return strings.TrimSpace(contentType) == "application/json"
}

func indentJSON(content string) (string, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return "", errors.Wrap(err, "parsing content as JSON")
	}
	if _, err := decoder.Token(); err != io.EOF {
		return "", errors.New("trailing data after JSON content")
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return "", errors.Wrap(err, "encoding JSON")
	}
	return buf.String(), nil
}

// truncate cuts content to at most limit bytes, backing off to the start
// of a UTF-8 sequence when one is within reach. It returns the kept
// content and the number of bytes cut.
func truncate(content string, limit uint64) (string, int) {
	if limit == 0 || uint64(len(content)) <= limit {
		return content, 0
	}
	cut := int(limit)
	for back := 0; back < utf8.UTFMax && back <= cut; back++ {
		if utf8.RuneStart(content[cut-back]) {
			cut -= back
			break
		}
	}
	return content[:cut], len(content) - cut
}
