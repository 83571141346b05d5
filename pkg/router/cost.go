package router

import (
	"time"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/graph"
)

// Settings controls the two per-profile cost functions. ObeyCrossings
// selects the Walking profile's treatment of severance roads; the delay
// fields apply only to Crossing roads (the "waiting" cost component).
type Settings struct {
	ObeyCrossings bool

	BaseSpeedMPH float64

	DelaySignalized time.Duration
	DelayZebra      time.Duration
	DelayOther      time.Duration
}

// DefaultSettings is a typical UK pedestrian preset: brisk walking pace,
// signal waits dominating delay.
var DefaultSettings = Settings{
	ObeyCrossings:   true,
	BaseSpeedMPH:    3.0,
	DelaySignalized: 30 * time.Second,
	DelayZebra:      5 * time.Second,
	DelayOther:      10 * time.Second,
}

const metersPerMile = 1609.344

func (s Settings) speedMetersPerSecond() float64 {
	return s.BaseSpeedMPH * metersPerMile / 3600.0
}

// waitingDelay returns the crossing-kind-dependent wait a road of kind k
// imposes; zero for every kind but Crossing, and zero entirely when the
// settings say pedestrians don't obey crossing controls.
func (s Settings) waitingDelay(k classify.RoadKind) time.Duration {
	if !s.ObeyCrossings || k.Tag != classify.Crossing {
		return 0
	}
	switch k.Crossing {
	case classify.Signalized:
		return s.DelaySignalized
	case classify.Zebra:
		return s.DelayZebra
	default:
		return s.DelayOther
	}
}

// ComputeCostParts returns the active (time-to-traverse) and waiting
// (crossing-delay) components of a road's cost under slot separately, so
// callers can report them individually (spec's active_duration_s /
// waiting_duration_s). CrossAnywhere never pays the waiting cost: it
// models a pedestrian who jaywalks straight across a severance rather
// than queuing at its crossings, so the crossing obligation the Walking
// profile pays doesn't apply.
func ComputeCostParts(r *graph.Road, s Settings, slot graph.ProfileSlot) (active, waiting time.Duration) {
	speed := s.speedMetersPerSecond()
	if speed <= 0 {
		speed = DefaultSettings.speedMetersPerSecond()
	}
	active = time.Duration(r.Length() / speed * float64(time.Second))
	if slot == graph.CrossAnywhere {
		return active, 0
	}
	return active, s.waitingDelay(r.Kind)
}

// ComputeCost returns the active plus waiting cost of a road under slot.
func ComputeCost(r *graph.Road, s Settings, slot graph.ProfileSlot) time.Duration {
	active, waiting := ComputeCostParts(r, s, slot)
	return active + waiting
}

// AccessForSlot resolves whether a road of kind k is traversable under
// profile slot p. Pedestrian roads carry no innate directionality: the
// only asymmetry a profile can introduce is exclusion, which applies
// uniformly to both directions.
func AccessForSlot(k classify.RoadKind, p graph.ProfileSlot) graph.Access {
	if k.Tag == classify.Severance && p == graph.Walking {
		return graph.AccessNone
	}
	return graph.AccessBoth
}
