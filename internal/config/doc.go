// Package config provides configuration structures and utilities for golfcard.
// It defines the CLI options, the tunable extraction settings (plausibility
// ranges, search windows, direction bias) and the YAML configuration file that
// carries extraction overrides and team rosters.
package config
