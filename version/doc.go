// Package version reports build metadata for kic.
//
// Version, Commit and Date can be injected at link time:
//
//	go build -ldflags "-X github.com/ttokutake/kic/version.Version=v1.0.0 -X github.com/ttokutake/kic/version.Commit=abc1234"
//
// Unset values fall back to the module version and VCS stamps recorded in
// the binary by the go command (debug.ReadBuildInfo).
package version
