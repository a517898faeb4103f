package main

import (
	"fmt"

	"github.com/retroenv/rvtrace/session"
	"github.com/retroenv/rvtrace/unit"
)

// buildUnit resolves the --unit/--address-width/--config-toml flags into a
// concrete unit.Unit. configTOML, when non-empty, overlays vendor-supplied
// field widths onto whatever Reference/PULP defaults the unit name selects.
func buildUnit(name string, addressWidth int, configTOML string) (unit.Unit, error) {
	var opts []unit.Option
	if addressWidth > 0 {
		opts = append(opts, unit.WithAddressWidth(addressWidth))
	}

	var u unit.Unit
	switch name {
	case "reference", "":
		u = unit.NewReference(opts...)
	case "pulp":
		u = unit.NewPULP(opts...)
	default:
		return nil, fmt.Errorf("rvtrace: unknown unit %q (want reference or pulp)", name)
	}

	if configTOML == "" {
		return u, nil
	}

	params, err := loadUnitParams(configTOML, u.Params())
	if err != nil {
		return nil, err
	}
	switch name {
	case "pulp":
		return unit.NewPULP(unit.WithParams(params)), nil
	default:
		return unit.NewReference(unit.WithParams(params)), nil
	}
}

// parseFraming maps a --framing flag value to a session.Framing.
func parseFraming(name string) (session.Framing, error) {
	switch name {
	case "smi", "":
		return session.FramingSMI, nil
	case "encapsulation":
		return session.FramingEncapsulation, nil
	default:
		return 0, fmt.Errorf("rvtrace: unknown framing %q (want smi or encapsulation)", name)
	}
}

// commonOptions are the flags shared by decode and inspect for selecting
// the encoder unit model and packet framing a capture was produced with.
// Unit, AddressWidth and Framing carry no struct-tag default: they are
// pre-populated from rvtrace.conf (see applyAppConfig) before the FlagSet
// registers them, so an unset flag falls back to the config file rather
// than a value baked into the binary.
type commonOptions struct {
	Unit         string `flag:"u,unit" usage:"encoder unit model (reference, pulp)"`
	AddressWidth int    `flag:"address-width" usage:"override the unit's instruction-address width in bits"`
	Framing      string `flag:"framing" usage:"packet framing (smi, encapsulation)"`
	ConfigTOML   string `flag:"config-toml" usage:"TOML file overriding unit field widths (spec.md §6)"`
	ConfigFile   string `flag:"conf" usage:"rvtrace.conf providing defaults for unit/address-width/framing/log"`
}

// configFlagValue does a light pre-scan of args for --conf/-conf so its
// value is known before the full FlagSet (which needs the loaded config's
// values as flag defaults) is built.
func configFlagValue(args []string) string {
	for i, a := range args {
		switch {
		case a == "--conf" || a == "-conf":
			if i+1 < len(args) {
				return args[i+1]
			}
		case len(a) > len("--conf=") && a[:len("--conf=")] == "--conf=":
			return a[len("--conf="):]
		}
	}
	return ""
}

// applyAppConfig loads rvtrace.conf (or the --conf path pre-scanned from
// args) and seeds common's fields from it, so the FlagSet's defaults -
// for any flag left unset on the command line - come from the config
// file rather than a hardcoded constant.
func applyAppConfig(args []string, common *commonOptions) (appConfig, error) {
	common.ConfigFile = configFlagValue(args)
	cfg, err := loadAppConfig(common.ConfigFile)
	if err != nil {
		return appConfig{}, err
	}
	common.Unit = cfg.Unit
	common.AddressWidth = cfg.AddressWidth
	common.Framing = cfg.Framing
	return cfg, nil
}
