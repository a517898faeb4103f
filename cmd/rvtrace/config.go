package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/rvtrace/internal/config"
	"github.com/retroenv/rvtrace/unit"
)

// appConfig holds rvtrace's own CLI defaults, loaded from an INI-style
// rvtrace.conf. It never carries encoder-unit field widths - those come
// from unitParamsTOML instead, per spec.md §6's external-TOML boundary.
type appConfig struct {
	Unit         string `config:"general.unit,default=reference"`
	AddressWidth int    `config:"general.address_width,default=0"`
	Framing      string `config:"general.framing,default=smi"`
	LogLevel     string `config:"log.level,default=info"`
	LogFormat    string `config:"log.format,default=console"`
}

func loadAppConfig(path string) (appConfig, error) {
	cfg := appConfig{
		Unit:         "reference",
		AddressWidth: 0,
		Framing:      "smi",
		LogLevel:     "info",
		LogFormat:    "console",
	}
	if path == "" {
		return cfg, nil
	}
	if err := config.Load(path, &cfg); err != nil {
		return appConfig{}, fmt.Errorf("rvtrace: loading %s: %w", path, err)
	}
	return cfg, nil
}

// unitParamsTOML mirrors unit.Params with the field names the E-Trace spec
// itself uses (§6), for a caller handing rvtrace a vendor-supplied encoder
// configuration rather than picking Reference or PULP's built-in defaults.
type unitParamsTOML struct {
	IAddressWidth    int `toml:"iaddress_width_p"`
	ContextWidth     int `toml:"context_width_p"`
	TimeWidth        int `toml:"time_width_p"`
	EcauseWidth      int `toml:"ecause_width_p"`
	PrivilegeWidth   int `toml:"privilege_width_p"`
	BPredSize        int `toml:"bpred_size_p"`
	CacheSize        int `toml:"cache_size_p"`
	F0SWidth         int `toml:"f0s_width_p"`
	BranchCountWidth int `toml:"branch_count_width_p"`
}

// loadUnitParams decodes path as TOML and overlays the non-zero fields it
// sets onto base, returning the result. A field absent from the file keeps
// base's value, so a caller can start from unit.DefaultParams() or a
// concrete unit's Params() and only override what the file specifies.
func loadUnitParams(path string, base unit.Params) (unit.Params, error) {
	var cfg unitParamsTOML
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return unit.Params{}, fmt.Errorf("rvtrace: decoding toml config %s: %w", path, err)
	}

	p := base
	if cfg.IAddressWidth != 0 {
		p.IAddressWidth = cfg.IAddressWidth
	}
	if cfg.ContextWidth != 0 {
		p.ContextWidth = cfg.ContextWidth
	}
	if cfg.TimeWidth != 0 {
		p.TimeWidth = cfg.TimeWidth
	}
	if cfg.EcauseWidth != 0 {
		p.EcauseWidth = cfg.EcauseWidth
	}
	if cfg.PrivilegeWidth != 0 {
		p.PrivilegeWidth = cfg.PrivilegeWidth
	}
	if cfg.BPredSize != 0 {
		p.BPredSize = cfg.BPredSize
	}
	if cfg.CacheSize != 0 {
		p.CacheSize = cfg.CacheSize
	}
	if cfg.F0SWidth != 0 {
		p.F0SWidth = cfg.F0SWidth
	}
	if cfg.BranchCountWidth != 0 {
		p.BranchCountWidth = cfg.BranchCountWidth
	}
	return p, p.Validate()
}
