package plant

import (
	"github.com/xiaonanln/plantsim/reactor"
)

// DefaultReactors returns the starting parameters of the four reactors every
// new plant is seeded with
func DefaultReactors() []reactor.Spec {
	return []reactor.Spec{
		{
			Name:        "Reactor 1",
			Coolant:     reactor.CoolantOn,
			Rods:        reactor.ControlRods{In: 182, Out: 118},
			Temperature: reactor.TemperatureReading{Amount: 289.29824, Unit: reactor.Celsius, Status: reactor.Safe},
			Output:      reactor.Output{Amount: 469.64, Unit: reactor.Megawatt},
			State:       reactor.Active,
			Fuel:        93,
		},
		{
			Name:        "Reactor 2",
			Coolant:     reactor.CoolantOn,
			Rods:        reactor.ControlRods{In: 4, Out: 296},
			Temperature: reactor.TemperatureReading{Amount: 725.69728, Unit: reactor.Celsius, Status: reactor.Safe},
			Output:      reactor.Output{Amount: 1178.08, Unit: reactor.Megawatt},
			State:       reactor.Active,
			Fuel:        15,
		},
		{
			Name:        "Reactor 3",
			Coolant:     reactor.CoolantOff,
			Rods:        reactor.ControlRods{In: 300, Out: 0},
			Temperature: reactor.TemperatureReading{Amount: 0, Unit: reactor.Celsius, Status: reactor.Safe},
			Output:      reactor.Output{Amount: 0, Unit: reactor.Megawatt},
			State:       reactor.Offline,
			Fuel:        42,
		},
		{
			Name:        "Reactor 4",
			Coolant:     reactor.CoolantOn,
			Rods:        reactor.ControlRods{In: 287, Out: 13},
			Temperature: reactor.TemperatureReading{Amount: 31.87184, Unit: reactor.Celsius, Status: reactor.Safe},
			Output:      reactor.Output{Amount: 51.74, Unit: reactor.Megawatt},
			State:       reactor.Active,
			Fuel:        28,
		},
	}
}

// Seed creates a default plant with freshly generated reactor IDs. opts are
// applied to every reactor.
func Seed(opts ...reactor.Option) *Plant {
	specs := DefaultReactors()
	reactors := make([]*reactor.Reactor, 0, len(specs))
	for _, spec := range specs {
		reactors = append(reactors, reactor.New(spec, opts...))
	}
	return New(DefaultName, reactors...)
}
