package output

import (
	"io"
	"os"
)

// FileSystem is what the header dumper needs from the file system.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Writable(name string) bool
	OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (osFileSystem) Writable(name string) bool {
	return writable(name)
}

func (osFileSystem) OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}
