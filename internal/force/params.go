// Package force relaxes a seeded mind map with a fixed-iteration
// force-directed simulation: inverse-square repulsion between every pair of
// nodes, Hooke springs along edges, and damped Euler integration.
package force

import (
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/validation"
)

// Tuned defaults. They are empirical: the goal is a readable tree, not
// physical accuracy.
const (
	DefaultIterations         = 200
	DefaultRepulsion          = 8000
	DefaultSpring             = 0.08
	DefaultTimestep           = 0.05
	DefaultDamping            = 0.95
	DefaultMinDistance        = 1
	DefaultRootRestLength     = 150
	DefaultCategoryRestLength = 120
	DefaultItemRestLength     = 100
	DefaultCurveBend          = 0.2
)

// Params holds the simulation constants.
type Params struct {
	Iterations  int     `yaml:"iterations" json:"iterations" validate:"gte=0"`
	Repulsion   float64 `yaml:"repulsion" json:"repulsion" validate:"gte=0"`
	Spring      float64 `yaml:"spring" json:"spring" validate:"gte=0"`
	Timestep    float64 `yaml:"timestep" json:"timestep" validate:"gt=0"`
	Damping     float64 `yaml:"damping" json:"damping" validate:"gte=0,lte=1"`
	MinDistance float64 `yaml:"min_distance" json:"min_distance" validate:"gt=0"`

	// Spring rest lengths, chosen by the type of the edge's source node.
	RootRestLength     float64 `yaml:"root_rest_length" json:"root_rest_length" validate:"gte=0"`
	CategoryRestLength float64 `yaml:"category_rest_length" json:"category_rest_length" validate:"gte=0"`
	ItemRestLength     float64 `yaml:"item_rest_length" json:"item_rest_length" validate:"gte=0"`

	// CurveBend scales the perpendicular offset of edge control points.
	CurveBend float64 `yaml:"curve_bend" json:"curve_bend"`

	// YieldEvery makes Run check its context every N iterations. Zero runs
	// the loop uninterrupted.
	YieldEvery int `yaml:"yield_every" json:"yield_every" validate:"gte=0"`
}

// DefaultParams returns the tuned constants.
func DefaultParams() Params {
	return Params{
		Iterations:         DefaultIterations,
		Repulsion:          DefaultRepulsion,
		Spring:             DefaultSpring,
		Timestep:           DefaultTimestep,
		Damping:            DefaultDamping,
		MinDistance:        DefaultMinDistance,
		RootRestLength:     DefaultRootRestLength,
		CategoryRestLength: DefaultCategoryRestLength,
		ItemRestLength:     DefaultItemRestLength,
		CurveBend:          DefaultCurveBend,
	}
}

// Validate checks that the constants keep the integrator finite.
func (p Params) Validate() error {
	return validation.Struct(p)
}

// restLength returns the ideal length of an edge leaving a node of type t.
func (p Params) restLength(t mindmap.NodeType) float64 {
	switch t {
	case mindmap.NodeTypeRoot:
		return p.RootRestLength
	case mindmap.NodeTypeCategory:
		return p.CategoryRestLength
	default:
		return p.ItemRestLength
	}
}
