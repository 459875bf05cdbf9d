package output

import (
	"github.com/blitz-io/blitz-go/sprint"
)

type Printer interface {
	PrintResult(result *sprint.Result) error
}

// HeaderPrinter dumps the raw header block of a transaction to a destination.
type HeaderPrinter interface {
	PrintHeaders(txn *sprint.Transaction, path, prefix string)
}

// ContentPrinter prints the content of a transaction in verbose mode.
type ContentPrinter interface {
	PrintContent(txn *sprint.Transaction, prefix string)
}
