//go:build windows
// +build windows

package output

import "os"

// Opening for writing also catches the read-only attribute and ACL
// denials that the permission bits do not show.
func writable(name string) bool {
	file, err := os.OpenFile(name, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
