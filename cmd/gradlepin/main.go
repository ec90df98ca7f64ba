package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/macropower/gradlepin/cmd/gradlepin/commands"
)

const (
	cmdName = "gradlepin"

	shortDesc = "Pin Gradle build configuration in Flutter Android projects."
	longDesc  = `gradlepin converges the Android half of Flutter projects toward a declared
policy: the Gradle wrapper version, plugin versions in the settings script,
compile options, desugaring, lint and packaging configuration in the app build
script, and the launch activity in the Android manifest.

Build scripts may use either the Kotlin DSL (*.gradle.kts) or the Groovy DSL
(*.gradle). Edits are idempotent and leave unrelated content untouched, so
running gradlepin again on a converged project changes nothing.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
