// Package registry maps tenant keys to their plants.
//
// A plant is created with the default seed the first time its key is seen
// and lives until the key is reset. Tenants are never "not found": every
// operation on an unknown key seeds the plant first. Only reactor IDs can be
// missing.
package registry

import (
	"fmt"
	"sync"

	"github.com/xiaonanln/plantsim/plant"
	"github.com/xiaonanln/plantsim/reactor"
	"github.com/xiaonanln/plantsim/util/keylock"
	"github.com/xiaonanln/plantsim/util/logger"
	"github.com/xiaonanln/plantsim/util/metrics"
)

// Option configures a Registry
type Option func(*Registry)

// WithReactorOptions applies opts to every reactor the registry seeds
func WithReactorOptions(opts ...reactor.Option) Option {
	return func(r *Registry) {
		r.reactorOpts = append(r.reactorOpts, opts...)
	}
}

// Registry is the process-wide tenant key → plant map. It is empty when
// created and safe for concurrent use.
type Registry struct {
	plants      map[string]*plant.Plant
	plantsMu    sync.RWMutex
	keyLock     *keylock.KeyLock
	reactorOpts []reactor.Option
	logger      *logger.Logger
}

// New creates an empty registry
func New(opts ...Option) *Registry {
	r := &Registry{
		plants:  make(map[string]*plant.Plant),
		keyLock: keylock.New(),
		logger:  logger.NewLogger("Registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry(%d plants)", r.Len())
}

// Len returns the number of registered plants
func (r *Registry) Len() int {
	r.plantsMu.RLock()
	defer r.plantsMu.RUnlock()
	return len(r.plants)
}

// GetOrCreate returns the plant for key, seeding a default one the first
// time key is seen
func (r *Registry) GetOrCreate(key string) *plant.Plant {
	r.plantsMu.RLock()
	p := r.plants[key]
	r.plantsMu.RUnlock()
	if p != nil {
		return p
	}

	unlock := r.keyLock.Lock(key)
	defer unlock()

	// Check again: another request may have seeded it while we waited
	r.plantsMu.RLock()
	p = r.plants[key]
	r.plantsMu.RUnlock()
	if p != nil {
		return p
	}

	p = plant.Seed(r.reactorOpts...)
	r.plantsMu.Lock()
	r.plants[key] = p
	count := len(r.plants)
	r.plantsMu.Unlock()

	metrics.SetPlantCount(count)
	r.logger.Infof("Seeded plant %q with %d reactors for new tenant (%d plants)", p.Name(), p.Len(), count)
	return p
}

// Reset discards key's plant and seeds a fresh default one in its place.
// The new reactors carry new IDs.
func (r *Registry) Reset(key string) {
	unlock := r.keyLock.Lock(key)
	defer unlock()

	p := plant.Seed(r.reactorOpts...)
	r.plantsMu.Lock()
	_, existed := r.plants[key]
	r.plants[key] = p
	count := len(r.plants)
	r.plantsMu.Unlock()

	metrics.SetPlantCount(count)
	metrics.RecordPlantReset()
	metrics.RecordCommand(CommandReset, metrics.StatusOK)
	if existed {
		r.logger.Infof("Reset plant to factory defaults")
	} else {
		r.logger.Infof("Reset requested for new tenant, seeded default plant")
	}
}

// Snapshot returns the plants registered right now. The scheduler ticks
// them without holding the registry lock.
func (r *Registry) Snapshot() []*plant.Plant {
	r.plantsMu.RLock()
	defer r.plantsMu.RUnlock()

	out := make([]*plant.Plant, 0, len(r.plants))
	for _, p := range r.plants {
		out = append(out, p)
	}
	return out
}
