package registry

import (
	"fmt"

	"github.com/xiaonanln/plantsim/reactor"
	perrors "github.com/xiaonanln/plantsim/util/errors"
	"github.com/xiaonanln/plantsim/util/metrics"
)

// PlantName returns the name of key's plant
func (r *Registry) PlantName(key string) string {
	return r.GetOrCreate(key).Name()
}

// Rename sets the name of key's plant
func (r *Registry) Rename(key, name string) {
	r.GetOrCreate(key).SetName(name)
	metrics.RecordCommand(CommandPlantName, metrics.StatusOK)
}

// FindAll lists the ID and name of every reactor in key's plant
func (r *Registry) FindAll(key string) []reactor.Summary {
	return r.GetOrCreate(key).Summaries()
}

// Logs returns every reactor's event log in key's plant
func (r *Registry) Logs(key string) []map[string][]string {
	return r.GetOrCreate(key).Logs()
}

// SetTemperatureUnit switches every reactor of key's plant to unit
func (r *Registry) SetTemperatureUnit(key string, unit reactor.TemperatureUnit) error {
	if !unit.Valid() {
		metrics.RecordCommand(CommandTemperatureUnit, metrics.StatusRejected)
		return perrors.NewRejectedError(CommandTemperatureUnit, fmt.Sprintf("unknown temperature unit %q", unit))
	}
	r.GetOrCreate(key).SetTemperatureUnit(unit)
	metrics.RecordCommand(CommandTemperatureUnit, metrics.StatusOK)
	return nil
}

// query reads from one reactor of key's plant
func query[T any](r *Registry, key, id string, read func(*reactor.Reactor) T) (T, error) {
	var v T
	err := r.GetOrCreate(key).WithReactor(id, func(rx *reactor.Reactor) {
		v = read(rx)
	})
	return v, err
}

// Temperature returns the reactor's temperature reading
func (r *Registry) Temperature(key, id string) (reactor.TemperatureReading, error) {
	return query(r, key, id, (*reactor.Reactor).Temperature)
}

// Coolant returns the reactor's coolant state
func (r *Registry) Coolant(key, id string) (reactor.Coolant, error) {
	return query(r, key, id, (*reactor.Reactor).Coolant)
}

// Output returns the reactor's power output
func (r *Registry) Output(key, id string) (reactor.Output, error) {
	return query(r, key, id, (*reactor.Reactor).Output)
}

// Fuel returns the reactor's fuel percentage
func (r *Registry) Fuel(key, id string) (float64, error) {
	return query(r, key, id, (*reactor.Reactor).Fuel)
}

// ControlRods returns the reactor's rod split
func (r *Registry) ControlRods(key, id string) (reactor.ControlRods, error) {
	return query(r, key, id, (*reactor.Reactor).ControlRods)
}

// State returns the reactor's operating state
func (r *Registry) State(key, id string) (reactor.State, error) {
	return query(r, key, id, (*reactor.Reactor).State)
}

// SetReactorName relabels a reactor
func (r *Registry) SetReactorName(key, id, name string) error {
	err := r.GetOrCreate(key).WithReactor(id, func(rx *reactor.Reactor) {
		rx.SetName(name)
	})
	metrics.RecordCommand(CommandReactorName, statusOf(reactor.Ok(), err))
	return err
}

// command runs a state machine command on one reactor of key's plant. The
// error is non-nil only when the reactor does not exist.
func (r *Registry) command(key, id, name string, apply func(*reactor.Reactor) reactor.Result) (reactor.Result, error) {
	var res reactor.Result
	err := r.GetOrCreate(key).WithReactor(id, func(rx *reactor.Reactor) {
		res = apply(rx)
	})
	if err != nil {
		res = reactor.Rejected(err.Error())
	}
	metrics.RecordCommand(name, statusOf(res, err))
	if !res.OK() && err == nil {
		r.logger.Debugf("%s on reactor %s rejected: %s", name, id, res.Reason())
	}
	return res, err
}

func statusOf(res reactor.Result, err error) string {
	switch {
	case err != nil && perrors.IsNotFound(err):
		return metrics.StatusNotFound
	case err != nil, !res.OK():
		return metrics.StatusRejected
	default:
		return metrics.StatusOK
	}
}

// RaiseRod withdraws one rod step
func (r *Registry) RaiseRod(key, id string) (reactor.Result, error) {
	return r.command(key, id, CommandRaiseRod, func(rx *reactor.Reactor) reactor.Result {
		return rx.RaiseControlRods(RodStep)
	})
}

// DropRod inserts one rod step
func (r *Registry) DropRod(key, id string) (reactor.Result, error) {
	return r.command(key, id, CommandDropRod, func(rx *reactor.Reactor) reactor.Result {
		return rx.DropControlRods(RodStep)
	})
}

// Start brings a reactor online
func (r *Registry) Start(key, id string) (reactor.Result, error) {
	return r.command(key, id, CommandStart, (*reactor.Reactor).StartReactor)
}

// ControlledShutdown takes a reactor offline
func (r *Registry) ControlledShutdown(key, id string) (reactor.Result, error) {
	return r.command(key, id, CommandControlledShutdown, (*reactor.Reactor).ControlledShutdown)
}

// EmergencyShutdown scrams a reactor
func (r *Registry) EmergencyShutdown(key, id string) (reactor.Result, error) {
	res, err := r.command(key, id, CommandEmergencyShutdown, (*reactor.Reactor).EmergencyShutdown)
	if err == nil && res.OK() {
		metrics.RecordEmergencyShutdown(metrics.TriggerManual, 1)
	}
	return res, err
}

// EnableMaintenance puts a reactor into maintenance mode
func (r *Registry) EnableMaintenance(key, id string) (reactor.Result, error) {
	return r.command(key, id, CommandMaintenance, (*reactor.Reactor).EnableMaintenanceMode)
}

// Refuel fills a reactor in maintenance back to 100%
func (r *Registry) Refuel(key, id string) (reactor.Result, error) {
	return r.command(key, id, CommandRefuel, (*reactor.Reactor).Refuel)
}

// SetCoolant switches a reactor's coolant
func (r *Registry) SetCoolant(key, id string, c reactor.Coolant) (reactor.Result, error) {
	return r.command(key, id, CommandSetCoolant, func(rx *reactor.Reactor) reactor.Result {
		return rx.SetCoolantState(c)
	})
}
