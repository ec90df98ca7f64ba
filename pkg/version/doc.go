// Package version reports the build version of gradlepin. Release builds set
// [Version] and [Revision] with -ldflags; other builds fall back to the
// module build information embedded by the Go toolchain.
package version
