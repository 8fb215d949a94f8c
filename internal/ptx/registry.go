package ptx

import (
	"github.com/anoma/taiga-core/internal/logic"
	"github.com/anoma/taiga-core/internal/primitives"
)

// LogicRegistry looks up the ResourceLogic governing a resource by its
// compressed verifying key (the resource's logic field). Every resource a
// builder touches must have its predicate registered here first.
type LogicRegistry struct {
	byVK map[primitives.F]logic.ResourceLogic
}

// NewLogicRegistry creates an empty registry.
func NewLogicRegistry() *LogicRegistry {
	return &LogicRegistry{byVK: make(map[primitives.F]logic.ResourceLogic)}
}

// Register adds a predicate, keyed by its own compressed vk.
func (r *LogicRegistry) Register(l logic.ResourceLogic) {
	r.byVK[l.CompressedVK()] = l
}

// Get looks up the predicate for a given compressed vk.
func (r *LogicRegistry) Get(vk primitives.F) (logic.ResourceLogic, bool) {
	l, ok := r.byVK[vk]
	return l, ok
}
