//go:build !windows
// +build !windows

package output

import "golang.org/x/sys/unix"

func writable(name string) bool {
	return unix.Access(name, unix.W_OK) == nil
}
