package models

// Event is the payload published on the Redis event channel when a domain
// object changes (order placed, dish created, ...).
type Event struct {
	EventID    string `json:"event_id,omitempty"`
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
