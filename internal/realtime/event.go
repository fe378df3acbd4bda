package realtime

// Event names understood by connected displays.
const (
	EventContentUpdate  = "content_update"
	EventSettingsUpdate = "settings_update"
	EventRefresh        = "refresh"
)

// Event is a broadcast message telling displays to re-fetch. It carries no
// content data itself.
type Event struct {
	Name    string                 `json:"event"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ContentUpdate describes a content mutation.
func ContentUpdate(contentType, action, id string) Event {
	return Event{
		Name:    EventContentUpdate,
		Payload: map[string]interface{}{"type": contentType, "action": action, "id": id},
	}
}

// SettingsUpdate signals changed display settings for a department.
func SettingsUpdate(department string) Event {
	return Event{
		Name:    EventSettingsUpdate,
		Payload: map[string]interface{}{"department": department},
	}
}

// Refresh asks every connected display to reload.
func Refresh() Event {
	return Event{Name: EventRefresh}
}

// Publisher is the narrow capability content services depend on. Publishing
// is fire-and-forget; a failed broadcast never fails the mutation.
type Publisher interface {
	Publish(Event)
}

// NopPublisher discards events; used in tests.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) {}
