package main

// Default limits for CLI commands.
const (
	DefaultListLimit = 50
)

// Valid export targets.
var validTargets = []string{"fs", "s3"}

// Valid import formats.
var validFormats = []string{"auto", "json", "csv"}
