// Package convergetui renders the progress of a converge run as a terminal
// UI. It consumes the events broadcast by [converge.Converger].
package convergetui
