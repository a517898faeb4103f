// Package config loads rvtrace's own INI-style CLI defaults into a struct.
//
// # Basic Usage
//
//	type AppConfig struct {
//	    Unit string `config:"general.unit,default=reference"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load("rvtrace.conf", &cfg); err != nil {
//	    return err
//	}
//
// # Configuration Format
//
//	# rvtrace configuration
//	[general]
//	unit = reference
//	address_width = 40
//	framing = smi
//
//	[log]
//	level = info
//	format = console
//
// # Supported Types
//
// String, int, and bool values only - rvtrace's own configuration never
// needs hex or float fields, and read-only loading never needs to write a
// config back out with its original formatting and comments preserved.
//
// # Struct Tags
//
// Use config struct tags to map fields to configuration keys:
//
//	type Config struct {
//	    Name    string `config:"section.key"`
//	    Timeout int    `config:"section.timeout,default=30"`
//	}
//
// # Default Values
//
// Specify default values in struct tags for fields that may be missing:
//
//	type AppConfig struct {
//	    Unit string `config:"general.unit,default=reference"`
//	}
//
// Default values are applied when the section or key is absent from the
// loaded file.
//
// # Required Fields
//
// Mark fields as required to enforce their presence during configuration loading:
//
//	type AppConfig struct {
//	    APIKey string `config:"api.key,required"`
//	}
//
// A missing required field returns an UnmarshalError wrapping
// ErrRequiredField.
package config
