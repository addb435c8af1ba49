package ecs

// StorageStats summarises the contents of a Storage.
type StorageStats struct {
	EntityCount     int
	PendingDestroys int
	PendingDefers   int
	Components      []ComponentStats
}

// ComponentStats counts the entities holding one component kind.
type ComponentStats struct {
	Kind  Kind
	Name  string
	Count int
}

// CollectStats walks every entity and counts components per registered kind.
func (s *Storage) CollectStats() *StorageStats {
	var counts [MaxKinds]int
	s.entities.ForEach(func(_ EntityId, c *ComponentContainer) bool {
		for kind := range c.Kinds().All() {
			counts[kind]++
		}
		return true
	})

	stats := &StorageStats{
		EntityCount: s.entities.Len(),
	}
	stats.PendingDestroys, stats.PendingDefers = s.commands.Pending()

	for kind := range s.registry.Kinds().All() {
		stats.Components = append(stats.Components, ComponentStats{
			Kind:  kind,
			Name:  s.registry.Name(kind),
			Count: counts[kind],
		})
	}
	return stats
}
