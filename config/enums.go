package config

//go:generate go tool go-enum --marshal --names --nocomments

// Rasterization backend used for snapshots.
// ENUM(external, builtin)
type RasterBackend int

// Console or file log verbosity.
// ENUM(none, debug, normal)
type LogLevel int
