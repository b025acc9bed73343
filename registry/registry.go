// Package registry stores the company's workers in an ECS world.
package registry

import (
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/corpo/components"
	"github.com/pthm-cable/corpo/economy"
)

// Registry is the ordered, append-only collection of workers. It owns the
// id sequence so ids stay unique for its whole lifetime.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	world *ecs.World

	workerMapper *ecs.Map3[components.Badge, components.Staff, components.Payroll]
	workerFilter *ecs.Filter3[components.Badge, components.Staff, components.Payroll]

	byID map[int64]ecs.Entity
	seq  *economy.Sequence
}

// New creates a registry seeded with previously hired workers.
func New(workers []economy.Worker) (*Registry, error) {
	world := ecs.NewWorld()
	r := &Registry{
		world:        world,
		workerMapper: ecs.NewMap3[components.Badge, components.Staff, components.Payroll](world),
		workerFilter: ecs.NewFilter3[components.Badge, components.Staff, components.Payroll](world),
		byID:         make(map[int64]ecs.Entity, len(workers)),
		seq:          economy.NewSequence(nil),
	}
	for _, w := range workers {
		if err := r.Add(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NextID returns an id no worker in this registry has used or will use.
func (r *Registry) NextID() int64 {
	return r.seq.NextID()
}

// Add registers a worker. Ids must be unique.
func (r *Registry) Add(w economy.Worker) error {
	if _, dup := r.byID[w.ID]; dup {
		return fmt.Errorf("registry: duplicate worker id %d", w.ID)
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	badge := components.Badge{ID: w.ID}
	staff := components.Staff{WorkPower: w.WorkPower, Efficiency: w.Efficiency, Support: w.Support}
	payroll := components.Payroll{Wage: w.Wage}

	r.byID[w.ID] = r.workerMapper.NewEntity(&badge, &staff, &payroll)
	r.seq.Observe(w.ID)
	return nil
}

// Len returns the number of workers.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Get looks up a worker by id.
func (r *Registry) Get(id int64) (economy.Worker, bool) {
	e, ok := r.byID[id]
	if !ok || !r.world.Alive(e) {
		return economy.Worker{}, false
	}
	badge, staff, payroll := r.workerMapper.Get(e)
	return toWorker(badge, staff, payroll), true
}

// Snapshot copies every worker out of the world in hire order.
func (r *Registry) Snapshot() []economy.Worker {
	workers := make([]economy.Worker, 0, len(r.byID))
	query := r.workerFilter.Query()
	for query.Next() {
		badge, staff, payroll := query.Get()
		workers = append(workers, toWorker(badge, staff, payroll))
	}
	sort.Slice(workers, func(i, j int) bool {
		return workers[i].ID < workers[j].ID
	})
	return workers
}

func toWorker(b *components.Badge, s *components.Staff, p *components.Payroll) economy.Worker {
	return economy.Worker{
		ID:         b.ID,
		WorkPower:  s.WorkPower,
		Efficiency: s.Efficiency,
		Support:    s.Support,
		Wage:       p.Wage,
	}
}
