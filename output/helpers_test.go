package output

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/blitz-io/blitz-go/sprint"
)

// writeRecorder keeps every Write call separately.
type writeRecorder struct {
	writes []string
}

func (r *writeRecorder) Write(p []byte) (int, error) {
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

type fakeFile struct {
	bytes.Buffer
	failWrite bool
	closed    bool
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.failWrite {
		return 0, errors.New("no space left on device")
	}
	return f.Buffer.Write(p)
}

func (f *fakeFile) Close() error {
	f.closed = true
	return nil
}

type openCall struct {
	name string
	flag int
}

type fakeFileSystem struct {
	// existing maps a path to whether it is writable
	existing  map[string]bool
	openErr   error
	failWrite bool

	opened []openCall
	files  map[string]*fakeFile
}

func (fs *fakeFileSystem) Stat(name string) (os.FileInfo, error) {
	if _, ok := fs.existing[name]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (fs *fakeFileSystem) Writable(name string) bool {
	return fs.existing[name]
}

func (fs *fakeFileSystem) OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	fs.opened = append(fs.opened, openCall{name: name, flag: flag})
	if fs.openErr != nil {
		return nil, fs.openErr
	}
	if fs.files == nil {
		fs.files = map[string]*fakeFile{}
	}
	f := &fakeFile{failWrite: fs.failWrite}
	fs.files[name] = f
	return f, nil
}

func mockedTransaction() sprint.Transaction {
	return sprint.Transaction{
		Line:    "GET / HTTP/1.1",
		Method:  "GET",
		URL:     "www.example.com",
		Content: "",
		Status:  200,
		Message: "OK",
		Headers: sprint.Headers{
			{Name: "User-Agent", Value: "blitz.io; 5f691b@11.22.33.250"},
			{Name: "Host", Value: "blitz.io"},
			{Name: "X-Powered-By", Value: "blitz.io"},
			{Name: "X-User-ID", Value: "5f6938a60e"},
			{Name: "X-User-IP", Value: "44.55.66.250"},
		},
	}
}

func mockedResult(steps int) *sprint.Result {
	result := &sprint.Result{
		Region:   "california",
		Schema:   sprint.SchemaTimed,
		Duration: sprint.Seconds(0.39443),
	}
	for i := 0; i < steps; i++ {
		result.Steps = append(result.Steps, sprint.Step{
			Connect:  sprint.Seconds(0.117957),
			Duration: sprint.Seconds(0.394431),
			Request:  mockedTransaction(),
			Response: mockedTransaction(),
		})
	}
	return result
}
