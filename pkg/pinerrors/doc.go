// Package pinerrors defines the error kinds shared by gradlepin packages.
//
// Packages wrap these sentinels so callers can classify failures with
// [errors.Is] regardless of which layer produced them.
package pinerrors
