package output

type Options struct {
	// DumpHeader is where raw header blocks go: a file path, "-" for the
	// console, or empty to disable dumping.
	DumpHeader string
	Verbose    bool

	EnableColor bool

	// ContentLimit caps the bytes of content printed per transaction
	// in verbose mode. Zero means no limit.
	ContentLimit uint64
	Timeline     bool

	OutputFile string
	Overwrite  bool
}
