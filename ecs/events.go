package ecs

// EventKind identifies world events.
type EventKind string

const (
	EventPolygonSpawned EventKind = "polygon_spawned"
	EventEntityCulled   EventKind = "entity_culled"
	EventSceneReset     EventKind = "scene_reset"
)

// Event is a world event payload.
type Event struct {
	Kind   EventKind
	Entity Entity
}

// EventQueue is a FIFO queue cleared at the end of each tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns pending events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
