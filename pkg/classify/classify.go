// Package classify maps OSM way tags to a RoadKind under a regional
// profile, and OSM node tags to a CrossingKind.
package classify

import "github.com/lowtide-maps/severance/pkg/tags"

// Kind is the RoadKind tag: Footway | Crossing | Severance | WithTraffic.
type Kind uint8

const (
	Footway Kind = iota
	Crossing
	Severance
	WithTraffic
)

func (k Kind) String() string {
	switch k {
	case Footway:
		return "Footway"
	case Crossing:
		return "Crossing"
	case Severance:
		return "Severance"
	case WithTraffic:
		return "WithTraffic"
	default:
		return "Unknown"
	}
}

// CrossingKind distinguishes how a Crossing road/point is controlled.
type CrossingKind uint8

const (
	Signalized CrossingKind = iota
	Zebra
	Other
)

func (k CrossingKind) String() string {
	switch k {
	case Signalized:
		return "Signalized"
	case Zebra:
		return "Zebra"
	default:
		return "Other"
	}
}

// CrossingKindFromTags implements CrossingKind.from_tags: crossing=traffic_signals
// is Signalized, crossing=uncontrolled is Zebra, everything else is Other.
func CrossingKindFromTags(t tags.Tags) CrossingKind {
	switch t.Get("crossing") {
	case "traffic_signals":
		return Signalized
	case "uncontrolled":
		return Zebra
	default:
		return Other
	}
}

// RoadKind is the result of classifying a way: a Kind tag plus, when the
// tag is Crossing, the CrossingKind that came with it.
type RoadKind struct {
	Tag      Kind
	Crossing CrossingKind
}

func (k RoadKind) String() string {
	if k.Tag == Crossing {
		return "Crossing(" + k.Crossing.String() + ")"
	}
	return k.Tag.String()
}

// Profile selects which classification rules apply. USA and USAShoulders
// replace the UK-style sidewalk-tag-driven rules with a highway-class-driven
// severance/with-traffic split.
type Profile uint8

const (
	SeparateWays Profile = iota
	SidewalksOnHighways
	USA
	USAShoulders
)

var bigRoads = []string{
	"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
}

var usaSeveranceRoads = []string{
	"motorway", "motorway_link", "trunk", "trunk_link",
	"primary", "primary_link", "secondary", "secondary_link",
	"tertiary", "tertiary_link",
}

var footwayHighways = []string{"footway", "steps", "path", "track", "corridor"}

var mediumHighways = []string{
	"secondary", "secondary_link", "tertiary", "tertiary_link",
	"residential", "unclassified", "service", "living_street", "cycleway",
}

var sidewalkSeparateKeys = []string{"sidewalk", "sidewalk:left", "sidewalk:right", "sidewalk:both"}

func sidewalkSeparate(t tags.Tags) bool {
	for _, k := range sidewalkSeparateKeys {
		if t.Is(k, "separate") {
			return true
		}
	}
	return false
}

// Classify implements the decision tree in order. A nil *RoadKind return
// means the way is excluded from the walking graph entirely.
func Classify(profile Profile, t tags.Tags) *RoadKind {
	if !t.Has("highway") || t.IsAny("highway", []string{"proposed", "construction"}) || t.Is("area", "yes") {
		return nil
	}

	if t.IsAny("highway", footwayHighways) {
		if t.Is("footway", "crossing") {
			return &RoadKind{Tag: Crossing, Crossing: CrossingKindFromTags(t)}
		}
		return &RoadKind{Tag: Footway}
	}
	if t.Is("highway", "cycleway") && t.Is("foot", "yes") {
		return &RoadKind{Tag: Footway}
	}

	if t.Is("highway", "crossing") || t.Has("crossing") {
		return &RoadKind{Tag: Crossing, Crossing: CrossingKindFromTags(t)}
	}

	if profile == USA || profile == USAShoulders {
		if t.IsAny("highway", usaSeveranceRoads) {
			if profile == USAShoulders && (t.Is("cycleway", "shoulder") || t.Is("cyclestreet", "yes")) {
				return &RoadKind{Tag: WithTraffic}
			}
			return &RoadKind{Tag: Severance}
		}
		if sidewalkSeparate(t) {
			return nil
		}
		return &RoadKind{Tag: WithTraffic}
	}

	if t.IsAny("highway", bigRoads) {
		return &RoadKind{Tag: Severance}
	}

	if sidewalkSeparate(t) {
		return nil
	}

	if t.Is("highway", "pedestrian") || t.IsAny("sidewalk", []string{"both", "right", "left"}) {
		return &RoadKind{Tag: WithTraffic}
	}

	if t.IsAny("highway", mediumHighways) && !t.Is("foot", "no") {
		switch profile {
		case SeparateWays:
			return nil
		case SidewalksOnHighways:
			return &RoadKind{Tag: WithTraffic}
		}
	}

	// Fallback: unrecognized highway classes default to Severance. This
	// mirrors the upstream profile exactly; see DESIGN.md Open Questions.
	return &RoadKind{Tag: Severance}
}
