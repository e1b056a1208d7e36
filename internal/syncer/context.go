package syncer

import (
	"context"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database"
)

// Context holds the identity maps and lookup registry for one run. It is
// owned by the orchestrator, passed explicitly into each phase, and never
// touched concurrently: phases run strictly in dependency order.
type Context struct {
	Projects map[string]database.ProjectRef
	Orders   map[string]uint
	Machines map[string]bool
}

func (s *Syncer) loadContext(ctx context.Context) (*Context, error) {
	projects, err := s.store.ProjectRefs(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.OrderIDs(ctx)
	if err != nil {
		return nil, err
	}
	machines, err := s.store.MachineNames(ctx)
	if err != nil {
		return nil, err
	}
	return &Context{
		Projects: projects,
		Orders:   orders,
		Machines: machines,
	}, nil
}
