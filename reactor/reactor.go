// Package reactor models a single simulated nuclear reactor: its physical
// state, the command surface operators drive it with, and the per-tick
// physics that advance it.
//
// A Reactor is not safe for concurrent use. Its owner (the plant) serialises
// every command, query and tick.
package reactor

import (
	"fmt"
	"time"

	"github.com/xiaonanln/plantsim/util/uniqueid"
)

// MaxLogs is the number of most recent event log entries a reactor keeps
const MaxLogs = 100

const isoMillis = "2006-01-02T15:04:05.000Z"

// Rejection reasons
const (
	reasonRaiseLimit         = "You cannot raise any more rods."
	reasonDropLimit          = "You cannot drop any more control rods."
	reasonShutdownAfterES    = "You cannot initiate a controlled shutdown on a reactor that underwent an emergency shutdown."
	reasonMaintenanceAfterES = "You cannot enter maintenance mode on a reactor that underwent an emergency shutdown."
	reasonAlreadyES          = "This reactor already underwent an emergency shutdown. Manual initiation is disallowed."
	reasonAlreadyActive      = "You cannot start a reactor that is already active."
	reasonRestartAfterES     = "You cannot restart a reactor that went through an Emergency shutdown."
	reasonNoFuel             = "You cannot restart a reactor that has no fuel."
	reasonRefuelNotMaint     = "You can only refuel a reactor that is in maintenance mode."
	reasonCoolantLocked      = "You cannot change the coolant on a reactor that is offline, in maintenance mode, or underwent an emergency shutdown."
)

// Spec holds the starting parameters of a reactor
type Spec struct {
	Name        string
	Coolant     Coolant
	Rods        ControlRods
	Temperature TemperatureReading
	Output      Output
	State       State
	Fuel        float64
}

// Option customises a reactor at construction
type Option func(*Reactor)

// WithNoise sets the random source used by Tick
func WithNoise(n Noise) Option {
	return func(r *Reactor) {
		if n != nil {
			r.noise = n
		}
	}
}

// WithClock sets the clock used to timestamp event log entries
func WithClock(now func() time.Time) Option {
	return func(r *Reactor) {
		if now != nil {
			r.now = now
		}
	}
}

// WithID overrides the generated ID
func WithID(id string) Option {
	return func(r *Reactor) {
		if id != "" {
			r.id = id
		}
	}
}

// Reactor is one simulated reactor
type Reactor struct {
	id          string
	name        string
	coolant     Coolant
	rods        ControlRods
	fuel        float64
	temperature Temperature
	output      Output
	state       State
	logs        []string

	noise Noise
	now   func() time.Time
}

// New creates a reactor from spec with a freshly generated ID
func New(spec Spec, opts ...Option) *Reactor {
	r := &Reactor{
		id:          uniqueid.UniqueId(),
		name:        spec.Name,
		coolant:     spec.Coolant,
		rods:        normaliseRods(spec.Rods),
		fuel:        clampPercent(spec.Fuel),
		temperature: NewTemperature(spec.Temperature.Amount, spec.Temperature.Unit, spec.Temperature.Status),
		output:      spec.Output,
		state:       spec.State,
		logs:        make([]string, 0, MaxLogs),
		noise:       DefaultNoise(),
		now:         time.Now,
	}
	if r.temperature.Status == "" {
		r.temperature.Status = Safe
	}
	if r.output.Unit == "" {
		r.output.Unit = Megawatt
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func normaliseRods(rods ControlRods) ControlRods {
	in := rods.In
	if in < 0 {
		in = 0
	}
	if in > RodTotal {
		in = RodTotal
	}
	return ControlRods{In: in, Out: RodTotal - in}
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func (r *Reactor) String() string {
	return fmt.Sprintf("Reactor(%s %q)", r.id, r.name)
}

// ID returns the reactor's stable identifier
func (r *Reactor) ID() string { return r.id }

// Name returns the reactor's label
func (r *Reactor) Name() string { return r.name }

// Summary returns the ID and name
func (r *Reactor) Summary() Summary {
	return Summary{ID: r.id, Name: r.name}
}

// Temperature returns the current temperature reading
func (r *Reactor) Temperature() TemperatureReading {
	return r.temperature.Reading()
}

// Thresholds returns the safety thresholds in the current temperature unit
func (r *Reactor) Thresholds() Thresholds {
	return r.temperature.Thresholds()
}

// Coolant returns the coolant state
func (r *Reactor) Coolant() Coolant { return r.coolant }

// Output returns the current power output
func (r *Reactor) Output() Output { return r.output }

// Fuel returns the fuel level as a percentage
func (r *Reactor) Fuel() float64 { return r.fuel }

// ControlRods returns the rod split
func (r *Reactor) ControlRods() ControlRods { return r.rods }

// State returns the operating state
func (r *Reactor) State() State { return r.state }

// Logs returns a copy of the event log, oldest first
func (r *Reactor) Logs() []string {
	out := make([]string, len(r.logs))
	copy(out, r.logs)
	return out
}

// AddLog appends a timestamped event and keeps only the newest MaxLogs entries
func (r *Reactor) AddLog(message string) {
	entry := fmt.Sprintf("%s: The following event occurred on %s with ID %s: %s",
		r.now().UTC().Format(isoMillis), r.name, r.id, message)
	r.logs = append(r.logs, entry)
	if over := len(r.logs) - MaxLogs; over > 0 {
		r.logs = append(r.logs[:0:0], r.logs[over:]...)
	}
}

// SetName relabels the reactor
func (r *Reactor) SetName(name string) {
	r.name = name
}

// SetTemperatureUnit switches the temperature unit, rescaling the reading and
// every threshold together. A no-op when unit is already current.
func (r *Reactor) SetTemperatureUnit(unit TemperatureUnit) {
	if !r.temperature.Convert(unit) {
		return
	}
	if unit == Fahrenheit {
		r.AddLog("Changed temperature unit to Fahrenheit.")
	} else {
		r.AddLog("Changed temperature unit to Celsius.")
	}
}

// RaiseControlRods withdraws up to amount rods. Movement is clamped at the
// boundary; it is rejected only when no rod is left inserted.
func (r *Reactor) RaiseControlRods(amount int) Result {
	if amount <= 0 || r.rods.In == 0 {
		return Rejected(reasonRaiseLimit)
	}
	if amount > r.rods.In {
		amount = r.rods.In
	}
	r.rods.In -= amount
	r.rods.Out += amount
	return Ok()
}

// DropControlRods inserts up to amount rods. Movement is clamped at the
// boundary; it is rejected only when every rod is already inserted.
func (r *Reactor) DropControlRods(amount int) Result {
	if amount <= 0 || r.rods.In == RodTotal {
		return Rejected(reasonDropLimit)
	}
	if amount > r.rods.Out {
		amount = r.rods.Out
	}
	r.rods.In += amount
	r.rods.Out -= amount
	return Ok()
}

// ControlledShutdown takes the reactor offline
func (r *Reactor) ControlledShutdown() Result {
	if r.state == EmergencyShutdown {
		return Rejected(reasonShutdownAfterES)
	}
	if r.state != Offline {
		r.state = Offline
		r.AddLog("Reactor was shut down in a controlled manner.")
	}
	return Ok()
}

// EnableMaintenanceMode puts the reactor into maintenance
func (r *Reactor) EnableMaintenanceMode() Result {
	if r.state == EmergencyShutdown {
		return Rejected(reasonMaintenanceAfterES)
	}
	if r.state != Maintenance {
		r.state = Maintenance
		r.AddLog("Reactor entered maintenance mode.")
	}
	return Ok()
}

// EmergencyShutdown scrams the reactor. It is terminal: no command leaves
// this state.
func (r *Reactor) EmergencyShutdown() Result {
	if r.state == EmergencyShutdown {
		return Rejected(reasonAlreadyES)
	}
	r.state = EmergencyShutdown
	r.AddLog("Emergency shutdown mode manually activated!")
	return Ok()
}

// StartReactor brings an offline or maintenance reactor with fuel back online
func (r *Reactor) StartReactor() Result {
	switch {
	case r.state == Active:
		return Rejected(reasonAlreadyActive)
	case r.state == EmergencyShutdown:
		return Rejected(reasonRestartAfterES)
	case r.fuel <= 0:
		return Rejected(reasonNoFuel)
	}
	r.AddLog("Reactor (re)started.")
	r.state = Active
	return Ok()
}

// Refuel fills the fuel to 100%. Only allowed in maintenance.
func (r *Reactor) Refuel() Result {
	if r.state != Maintenance {
		return Rejected(reasonRefuelNotMaint)
	}
	r.AddLog("Reactor refueled.")
	r.fuel = 100
	return Ok()
}

// SetCoolantState switches the coolant on a running reactor
func (r *Reactor) SetCoolantState(c Coolant) Result {
	if !c.Valid() {
		return Rejected(fmt.Sprintf("Unknown coolant state %q.", c))
	}
	if c == r.coolant {
		return Rejected(fmt.Sprintf("The coolant is already %s.", r.coolant))
	}
	if r.state == Offline || r.state == Maintenance || r.state == EmergencyShutdown {
		return Rejected(reasonCoolantLocked)
	}
	r.AddLog(fmt.Sprintf("Coolant state changed to %s.", c))
	r.coolant = c
	return Ok()
}
