package reactor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTickReactor(spec Spec, noise ...float64) *Reactor {
	return New(spec, WithClock(fixedClock), WithNoise(NewSequenceNoise(noise...)))
}

func countLogs(r *Reactor, fragment string) int {
	n := 0
	for _, entry := range r.Logs() {
		if strings.Contains(entry, fragment) {
			n++
		}
	}
	return n
}

func TestTickOfflineAndMaintenanceCoolToAmbient(t *testing.T) {
	for _, state := range []State{Offline, Maintenance} {
		for _, unit := range []TemperatureUnit{Celsius, Fahrenheit} {
			r := newTickReactor(Spec{
				Name:        "idle",
				Coolant:     CoolantOn,
				Rods:        ControlRods{In: 100, Out: 200},
				Temperature: TemperatureReading{Amount: 500, Unit: unit, Status: Safe},
				State:       state,
				Fuel:        40,
			})

			r.Tick()

			assert.Equal(t, ControlRods{In: RodTotal, Out: 0}, r.ControlRods())
			assert.Equal(t, Ambient(unit), r.Temperature().Amount)
			assert.Equal(t, 0.0, r.Output().Amount)
			assert.Equal(t, 40.0, r.Fuel(), "idle reactors do not burn fuel")
			assert.Equal(t, state, r.State())
		}
	}
}

func TestTickActiveWithCoolant(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "Reactor 1",
		Coolant:     CoolantOn,
		Rods:        ControlRods{In: 182, Out: 118},
		Temperature: TemperatureReading{Amount: 289.29824, Unit: Celsius, Status: Safe},
		State:       Active,
		Fuel:        93,
	}, 0.5, 0.5)

	r.Tick()

	assert.InDelta(t, 92.9, r.Fuel(), 1e-9)
	assert.InDelta(t, 316.52046, r.Temperature().Amount, 1e-9)
	assert.Equal(t, Safe, r.Temperature().Status)
	assert.InDelta(t, 469.64, r.Output().Amount, 1e-9)
	assert.Empty(t, r.Logs())
	assertRodInvariant(t, r)
}

func TestTickActiveWithCoolantFahrenheit(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "f",
		Coolant:     CoolantOn,
		Rods:        ControlRods{In: 200, Out: 100},
		Temperature: TemperatureReading{Amount: 72, Unit: Fahrenheit, Status: Safe},
		State:       Active,
		Fuel:        50,
	}, 0, 0.5)

	r.Tick()

	assert.InDelta(t, 72+100*2.45168*1.8+9, r.Temperature().Amount, 1e-9)
	assert.Equal(t, 50.0, r.Fuel())
}

func TestTickActiveWithoutCoolantDrifts(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "hot",
		Coolant:     CoolantOff,
		Rods:        ControlRods{In: 300, Out: 0},
		Temperature: TemperatureReading{Amount: 100, Unit: Celsius, Status: Safe},
		State:       Active,
		Fuel:        50,
	}, 0, 0.25)

	r.Tick()
	assert.InDelta(t, 105.0, r.Temperature().Amount, 1e-9)
	r.Tick()
	assert.InDelta(t, 110.0, r.Temperature().Amount, 1e-9)
}

func TestTickStatusTransitionLogsOnce(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "warm",
		Coolant:     CoolantOn,
		Rods:        ControlRods{In: 0, Out: 300},
		Temperature: TemperatureReading{Amount: 100, Unit: Celsius, Status: Safe},
		State:       Active,
		Fuel:        50,
	}, 0, 0)

	r.Tick()
	assert.InDelta(t, 22.22222+300*2.45168, r.Temperature().Amount, 1e-9)
	assert.Equal(t, Caution, r.Temperature().Status)
	assert.Equal(t, 1, countLogs(r, "caution is advised"))

	r.Tick()
	assert.Equal(t, 1, countLogs(r, "caution is advised"))

	r.DropControlRods(RodTotal)
	r.Tick()
	assert.Equal(t, Safe, r.Temperature().Status)
	assert.Equal(t, 1, countLogs(r, "returned to safe"))
}

func TestTickFuelExhaustionForcesOffline(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "dry",
		Coolant:     CoolantOn,
		Rods:        ControlRods{In: 150, Out: 150},
		Temperature: TemperatureReading{Amount: 400, Unit: Celsius, Status: Safe},
		State:       Active,
		Fuel:        0.05,
	}, 0.5)

	r.Tick()

	assert.Equal(t, 0.0, r.Fuel())
	assert.Equal(t, Offline, r.State())
	assert.Equal(t, 1, countLogs(r, "Reactor shut down due to lack of fuel."))
	assert.Equal(t, 400.0, r.Temperature().Amount, "no heating once out of fuel")

	r.Tick()
	assert.Equal(t, 0.0, r.Fuel())
	assert.Equal(t, Ambient(Celsius), r.Temperature().Amount)
	assert.Equal(t, 1, countLogs(r, "lack of fuel"))
	assert.False(t, r.StartReactor().OK())
}

func TestTickFuelNeverNegative(t *testing.T) {
	r := newTickReactor(Spec{
		Name:    "burn",
		Coolant: CoolantOn,
		Rods:    ControlRods{In: 300},
		State:   Active,
		Fuel:    1,
	}, 0.99)

	for i := 0; i < 20; i++ {
		r.Tick()
		assert.GreaterOrEqual(t, r.Fuel(), 0.0)
	}
	assert.Equal(t, 0.0, r.Fuel())
	assert.Equal(t, Offline, r.State())
}

func TestTickOverheatTriggersSingleEmergencyShutdown(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "runaway",
		Coolant:     CoolantOff,
		Rods:        ControlRods{In: 300, Out: 0},
		Temperature: TemperatureReading{Amount: 945, Unit: Celsius, Status: Meltdown},
		State:       Active,
		Fuel:        50,
	}, 0, 0.5)

	r.Tick()
	require.Equal(t, EmergencyShutdown, r.State())
	assert.Equal(t, Meltdown, r.Temperature().Status)
	assert.InDelta(t, 955.0, r.Temperature().Amount, 1e-9)
	assert.Equal(t, 1, countLogs(r, "Emergency shutdown mode automatically activated!"))

	// Still beyond the limit: coolant gets forced on, no second activation
	r.Tick()
	assert.Equal(t, CoolantOn, r.Coolant())
	assert.Equal(t, 1, countLogs(r, "Coolant was enabled due to Emergency shutdown mode."))
	assert.Equal(t, 1, countLogs(r, "automatically activated"))

	r.Tick()
	assert.Equal(t, 1, countLogs(r, "automatically activated"))
	assert.Equal(t, 1, countLogs(r, "Coolant was enabled"))
}

func TestTickEmergencyShutdownDrivesRodsIn(t *testing.T) {
	r := newTickReactor(Spec{
		Name:        "scram",
		Coolant:     CoolantOn,
		Rods:        ControlRods{In: 182, Out: 118},
		Temperature: TemperatureReading{Amount: 289.29824, Unit: Celsius, Status: Safe},
		State:       EmergencyShutdown,
		Fuel:        50,
	}, 0)

	r.Tick()
	assert.Equal(t, ControlRods{In: 217, Out: 83}, r.ControlRods())
	assert.InDelta(t, 22.22222+83*2.45168, r.Temperature().Amount, 1e-9)
	assert.InDelta(t, 83*3.98, r.Output().Amount, 1e-9)
	assert.Equal(t, 50.0, r.Fuel())

	for i := 0; i < 3; i++ {
		r.Tick()
		assertRodInvariant(t, r)
	}
	assert.Equal(t, ControlRods{In: 300, Out: 0}, r.ControlRods())
	assert.Equal(t, 0.0, r.Output().Amount)

	before := r.Temperature().Amount
	r.Tick()
	assert.Equal(t, before, r.Temperature().Amount, "temperature holds once every rod is in")
	assert.Equal(t, EmergencyShutdown, r.State())
}

func TestTickEmergencyShutdownIsTerminal(t *testing.T) {
	r := newTickReactor(Spec{
		Name:    "done",
		Coolant: CoolantOn,
		Rods:    ControlRods{In: 300},
		State:   Active,
		Fuel:    50,
	})
	require.True(t, r.EmergencyShutdown().OK())

	for i := 0; i < 5; i++ {
		r.Tick()
	}

	assert.Equal(t, EmergencyShutdown, r.State())
	assert.False(t, r.StartReactor().OK())
	assert.False(t, r.EnableMaintenanceMode().OK())
	assert.False(t, r.ControlledShutdown().OK())
	assert.False(t, r.Refuel().OK())
}

func TestTickKeepsRodInvariant(t *testing.T) {
	r := New(Spec{
		Name:    "seeded",
		Coolant: CoolantOn,
		Rods:    ControlRods{In: 4, Out: 296},
		State:   Active,
		Fuel:    100,
	}, WithNoise(SeededNoise(42)))

	for i := 0; i < 200; i++ {
		r.Tick()
		assertRodInvariant(t, r)
		assert.GreaterOrEqual(t, r.Fuel(), 0.0)
		assert.LessOrEqual(t, r.Fuel(), 100.0)
		assert.LessOrEqual(t, len(r.Logs()), MaxLogs)
	}
}
