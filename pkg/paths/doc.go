// Package paths locates Android projects on disk.
//
// A target may be given as a Flutter app root (the Android project lives in
// its android/ child), as the Android project root itself, or as any
// directory below it. Searches never climb above the enclosing git
// repository, when there is one.
package paths
