// Package config loads enumeration definitions declared in YAML or TOML files.
//
// The order choices are written in is kept; it is the order values are declared in the column type.
package config
