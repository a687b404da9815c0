package messageplugin

import "fmt"

var (
	versionMajor = 0
	versionMinor = 1
	versionPatch = 0

	// versionBuild is set at link time: -ldflags "-X github.com/golly-go/messageplugin.versionBuild=-rc1"
	versionBuild = ""
)

// SetVersion sets the application version
func SetVersion(major, minor, patch int, build string) {
	versionMajor = major
	versionMinor = minor
	versionPatch = patch
	versionBuild = build
}

// Version returns a version string
func Version() string {
	return fmt.Sprintf("v%d.%d.%d%s", versionMajor, versionMinor, versionPatch, versionBuild)
}
