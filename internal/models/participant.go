package models

// Participant represents an active chat session, keyed by name.
type Participant struct {
	Name       string `bson:"name" json:"name"`
	LastStatus int64  `bson:"lastStatus" json:"lastStatus"` // milliseconds since epoch
}
