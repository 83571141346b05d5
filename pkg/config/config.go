// Package config provides named regional Settings presets, loaded from an
// embedded YAML document rather than constructed field-by-field at every
// call site.
package config

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/invopop/yaml"

	"github.com/lowtide-maps/severance/pkg/router"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset names recognized by Load.
const (
	UK  = "uk"
	USA = "usa"
)

// rawPreset mirrors router.Settings but with JSON tags and plain seconds
// for the crossing delays, matching the units a config author writes in
// YAML rather than time.Duration's internal representation.
type rawPreset struct {
	ObeyCrossings    bool    `json:"obey_crossings"`
	BaseSpeedMPH     float64 `json:"base_speed_mph"`
	DelaySignalizedS float64 `json:"delay_signalized_s"`
	DelayZebraS      float64 `json:"delay_zebra_s"`
	DelayOtherS      float64 `json:"delay_other_s"`
}

func (p rawPreset) toSettings() router.Settings {
	return router.Settings{
		ObeyCrossings:   p.ObeyCrossings,
		BaseSpeedMPH:    p.BaseSpeedMPH,
		DelaySignalized: time.Duration(p.DelaySignalizedS * float64(time.Second)),
		DelayZebra:      time.Duration(p.DelayZebraS * float64(time.Second)),
		DelayOther:      time.Duration(p.DelayOtherS * float64(time.Second)),
	}
}

// Load returns the named regional preset's Settings. name is
// case-sensitive; see UK and USA.
func Load(name string) (router.Settings, error) {
	presets, err := parsePresets()
	if err != nil {
		return router.Settings{}, err
	}
	p, ok := presets[name]
	if !ok {
		return router.Settings{}, fmt.Errorf("config: unknown preset %q", name)
	}
	return p.toSettings(), nil
}

// Names returns every preset name the embedded document defines.
func Names() []string {
	presets, err := parsePresets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

func parsePresets() (map[string]rawPreset, error) {
	var presets map[string]rawPreset
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		return nil, fmt.Errorf("config: parsing embedded presets: %w", err)
	}
	return presets, nil
}
