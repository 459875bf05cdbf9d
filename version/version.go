package version

import "fmt"

// Version is the release of the blitz command, reported by --version
// and in the default User-Agent of sprint requests.
type Version struct {
	major int
	minor int
	patch int
}

func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// Current is the running release.
func Current() *Version {
	return &Version{major: 0, minor: 3, patch: 1}
}
