// Package config provides configuration structures and utilities for
// pixeltally. It defines the counting options (threshold, extension filter,
// recursion), report output preferences, and the optional YAML defaults file.
package config
