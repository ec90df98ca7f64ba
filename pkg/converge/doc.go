// Package converge drives gradlepin over Android projects.
//
// For every project a [Converger] processes a fixed set of targets (the
// Gradle wrapper, the settings script, the app build script and the Android
// manifest). Gradle scripts go through dialect detection, the block document
// model and the patch engine; missing files are created from templates. Files
// are written only when their content changes.
package converge
