package models

// Message types. Status messages are system-generated on join and expiry.
const (
	TypeMessage = "message"
	TypePrivate = "private_message"
	TypeStatus  = "status"
)

// Broadcast is the recipient value meaning "all participants".
const Broadcast = "Todos"

// Message represents an immutable chat entry. The ID is a ULID, so
// lexicographic order matches creation order.
type Message struct {
	ID   string `bson:"_id,omitempty" json:"id,omitempty"`
	From string `bson:"from" json:"from"`
	To   string `bson:"to" json:"to"`
	Text string `bson:"text" json:"text"`
	Type string `bson:"type" json:"type"`
	Time string `bson:"time" json:"time"` // HH:mm:ss, stamped at creation
}
