package resource

// Handle is an opaque reference to a state block in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a state lifecycle event.
type Event struct {
	Value  any
	Tag    string
	Handle Handle
	Type   EventType
}

// Observer receives notifications about state lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup.
type Dropper interface {
	Drop()
}
