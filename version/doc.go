// Package version reports the build identity of the qk binary.
//
// Version, commit and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/querykit/version.Version=0.3.0 \
//	  -X github.com/kbukum/querykit/version.Commit=$(git rev-parse --short HEAD)" ./cmd/qk
//
// Unstamped builds fall back to the VCS settings recorded by the Go toolchain.
package version
