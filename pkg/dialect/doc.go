// Package dialect classifies Gradle build scripts as Kotlin DSL or Groovy DSL
// and renders settings and entries in each dialect's spelling.
//
// Detection only looks at which of two candidate filenames exists. Rendering
// is a per-dialect table, so callers that edit documents never branch on the
// dialect themselves.
package dialect
