// Package plant groups the reactors owned by one tenant under a name and a
// single lock. Every read, command and tick on a plant's reactors goes
// through that lock, so a reactor is never touched by two goroutines at once.
package plant

import (
	"sync"

	"github.com/xiaonanln/plantsim/reactor"
	perrors "github.com/xiaonanln/plantsim/util/errors"
)

// DefaultName is the name given to freshly seeded plants
const DefaultName = "My Nuclear Power Plant"

// Plant is a tenant's named, ordered collection of reactors
type Plant struct {
	mu       sync.Mutex
	name     string
	reactors []*reactor.Reactor
	byID     map[string]*reactor.Reactor
}

// New creates a plant holding reactors in the given order
func New(name string, reactors ...*reactor.Reactor) *Plant {
	p := &Plant{
		name:     name,
		reactors: reactors,
		byID:     make(map[string]*reactor.Reactor, len(reactors)),
	}
	for _, r := range reactors {
		p.byID[r.ID()] = r
	}
	return p
}

// Name returns the plant name
func (p *Plant) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// SetName renames the plant
func (p *Plant) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

// Len returns the number of reactors
func (p *Plant) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.reactors)
}

// Summaries lists every reactor's ID and name in plant order
func (p *Plant) Summaries() []reactor.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]reactor.Summary, 0, len(p.reactors))
	for _, r := range p.reactors {
		out = append(out, r.Summary())
	}
	return out
}

// Logs returns each reactor's event log keyed by reactor ID, in plant order
func (p *Plant) Logs() []map[string][]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]map[string][]string, 0, len(p.reactors))
	for _, r := range p.reactors {
		out = append(out, map[string][]string{r.ID(): r.Logs()})
	}
	return out
}

// SetTemperatureUnit switches every reactor to unit
func (p *Plant) SetTemperatureUnit(unit reactor.TemperatureUnit) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.reactors {
		r.SetTemperatureUnit(unit)
	}
}

// WithReactor runs fn on the reactor with the given ID while holding the
// plant lock. It returns a NotFoundError when no such reactor exists.
// fn must not call back into the plant.
func (p *Plant) WithReactor(id string, fn func(r *reactor.Reactor)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.byID[id]
	if !ok {
		return perrors.NewNotFoundError("reactor", id)
	}
	fn(r)
	return nil
}

// TickStats summarises one plant tick
type TickStats struct {
	Reactors           int
	EmergencyShutdowns int
}

// Tick advances every reactor by one step and reports how many of them
// entered emergency shutdown on their own during it.
func (p *Plant) Tick() TickStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := TickStats{Reactors: len(p.reactors)}
	for _, r := range p.reactors {
		before := r.State()
		r.Tick()
		if before != reactor.EmergencyShutdown && r.State() == reactor.EmergencyShutdown {
			stats.EmergencyShutdowns++
		}
	}
	return stats
}
