// Package version holds build metadata, set with -ldflags at build time:
//
//	go build -ldflags "-X github.com/keshon/command-deploy/internal/version.Version=v1.2.0"
package version

var (
	AppName = "command-deploy"
	Version = "dev"
)

// String returns "name version".
func String() string {
	return AppName + " " + Version
}
