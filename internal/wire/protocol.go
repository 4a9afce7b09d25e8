package wire

import "time"

// SyncRequest is the body of a gate-to-backend sync POST.
type SyncRequest struct {
	Events []Event `json:"events"`
}

// RejectedEvent names one event in a batch the backend refused, with the
// reason. EventID is null when the element carried no usable eventId.
type RejectedEvent struct {
	EventID *string `json:"eventId"`
	Error   string  `json:"error"`
}

// SyncResponse acknowledges a sync batch. Acked ids are safe to mark sent;
// rejected ids are permanent failures the gate must not retry.
type SyncResponse struct {
	AckedEventIDs []string        `json:"ackedEventIds"`
	Rejected      []RejectedEvent `json:"rejected"`
	ServerTime    time.Time       `json:"serverTime"`
}
