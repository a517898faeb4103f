// Package config loads rvtrace's own INI-style CLI defaults (unit name,
// framing, log level/format) into a struct via tags, the way the teacher's
// config package maps a struct to an INI file - trimmed here to the load
// direction only, since rvtrace never writes a config file back out. The
// unit-parameter record itself (spec.md §6) is loaded separately via
// BurntSushi/toml at the cmd/rvtrace boundary; this package only ever sees
// rvtrace's own small appConfig.
//
// Basic usage:
//
//	type Config struct {
//		Unit string `config:"general.unit,default=reference"`
//	}
//
//	var cfg Config
//	err := config.Load("rvtrace.conf", &cfg)
package config

// valueType represents the type of a parsed configuration value.
type valueType int

const (
	stringType valueType = iota
	intType
	boolType
)

// Config represents configuration loaded from an INI-style file.
type Config struct {
	sections map[string]section
	filename string
}

// section represents a configuration section with key-value pairs.
type section map[string]value

// value represents a configuration value with type information.
type value struct {
	Raw    string
	parsed any
	vtype  valueType
}

// tagInfo contains parsed tag information including default values and required flag.
type tagInfo struct {
	Section      string
	Key          string
	DefaultValue string
	HasDefault   bool
	Required     bool
}

// String returns the string representation of valueType.
func (vt valueType) String() string {
	switch vt {
	case stringType:
		return "string"
	case intType:
		return "int"
	case boolType:
		return "bool"
	default:
		return "unknown"
	}
}
