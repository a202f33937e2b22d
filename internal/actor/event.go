package actor

// EventKind identifies the registry mutation an Event describes.
type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
	EventRenamed
	EventPlaceholderChanged
	EventSelected
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventRenamed:
		return "renamed"
	case EventPlaceholderChanged:
		return "placeholder_changed"
	case EventSelected:
		return "selected"
	}
	return "unknown"
}

// Event is emitted by every successful registry mutation.
type Event struct {
	Kind  EventKind
	Index int
	// Name is the entry's name after the mutation, or the removed name.
	Name string
	// Previous holds the old name for renames.
	Previous string
	// Recompute is set when bound objects may resolve differently.
	Recompute bool
}
