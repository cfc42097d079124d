package models

// ComplaintEvent — подія життєвого циклу скарги, яка публікується
// в Redis Pub/Sub і транслюється адміністраторам через WebSocket.
type ComplaintEvent struct {
	Type      string    `json:"type"` // "created" або "updated"
	Complaint Complaint `json:"complaint"`
	At        string    `json:"at"` // ISO-8601 UTC
}
