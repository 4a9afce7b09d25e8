// Package wire defines the event vocabulary shared by the gate and the
// backend: the envelope POSTed by the sync worker and the shape rules the
// backend applies to each element before touching its log.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// EventType discriminates the payloads carried in a sync batch.
type EventType string

const (
	EventEntry            EventType = "ENTRY"
	EventExit             EventType = "EXIT"
	EventEntryExpiredSeen EventType = "ENTRY_EXPIRED_SEEN"
)

// EntryStatus is the lifecycle state of an entry log row.
type EntryStatus string

const (
	StatusPending EntryStatus = "PENDING"
	StatusEntered EntryStatus = "ENTERED"
	StatusExited  EntryStatus = "EXITED"
	StatusExpired EntryStatus = "EXPIRED"
)

// EntryFlag records how an entry came to be.
type EntryFlag string

const (
	EntryFlagNormal EntryFlag = "NORMAL_ENTRY"
	EntryFlagForced EntryFlag = "FORCED_ENTRY"
	// EntryFlagDuplicate is reserved. A duplicate live scan is reported to
	// the operator without creating a row, so nothing produces it yet.
	EntryFlagDuplicate EntryFlag = "DUPLICATE_ENTRY"
)

// ExitFlag records how an exit came to be.
type ExitFlag string

const (
	ExitFlagNormal    ExitFlag = "NORMAL_EXIT"
	ExitFlagEmergency ExitFlag = "EMERGENCY_EXIT"
	ExitFlagOrphan    ExitFlag = "ORPHAN_EXIT"
	ExitFlagAuto      ExitFlag = "AUTO_EXIT"
	ExitFlagDuplicate ExitFlag = "DUPLICATE_EXIT"
)

// Event is one element of a sync batch. ENTRY and ENTRY_EXPIRED_SEEN events
// describe an entry log row; EXIT events additionally carry exitId and
// exitFlag and describe an exit log row. Extra is an opaque ordered list and
// DeviceMeta an opaque object; both pass through the pipeline untouched.
type Event struct {
	EventID    string          `json:"eventId"`
	Type       EventType       `json:"type"`
	EntryID    string          `json:"entryId,omitempty"`
	Roll       string          `json:"roll,omitempty"`
	ScannedAt  *ISOTime        `json:"scannedAt,omitempty"`
	Status     EntryStatus     `json:"status,omitempty"`
	EntryFlag  EntryFlag       `json:"entryFlag,omitempty"`
	Laptop     *string         `json:"laptop,omitempty"`
	Extra      json.RawMessage `json:"extra,omitempty"`
	DeviceMeta json.RawMessage `json:"deviceMeta,omitempty"`
	DeviceID   string          `json:"deviceId,omitempty"`
	Source     string          `json:"source,omitempty"`
	OS         string          `json:"os,omitempty"`
	ExitID     string          `json:"exitId,omitempty"`
	ExitFlag   ExitFlag        `json:"exitFlag,omitempty"`
}

// Validate applies the receiver-side shape rules. The returned error text is
// surfaced verbatim as the rejected[] reason for the event, so the wording is
// part of the wire contract.
func (e *Event) Validate() error {
	if e.EventID == "" {
		return errors.New("Missing eventId")
	}
	if _, err := uuid.Parse(e.EventID); err != nil {
		return errors.New("Invalid eventId (must be UUID)")
	}

	switch e.Type {
	case EventEntry, EventEntryExpiredSeen:
		if e.EntryID == "" || e.Roll == "" {
			return errors.New("ENTRY requires entryId and roll")
		}
		if _, err := uuid.Parse(e.EntryID); err != nil {
			return errors.New("Invalid entryId (must be UUID)")
		}
		if !rawIsList(e.Extra) {
			return errors.New("ENTRY extra must be a list")
		}
	case EventExit:
		if e.ExitID == "" || e.Roll == "" {
			return errors.New("EXIT requires exitId and roll")
		}
		if _, err := uuid.Parse(e.ExitID); err != nil {
			return errors.New("Invalid exitId (must be UUID)")
		}
		// entryId is optional on exits (orphans carry none) but must be a
		// UUID when present, the skeleton row's PK comes from it.
		if e.EntryID != "" {
			if _, err := uuid.Parse(e.EntryID); err != nil {
				return errors.New("Invalid entryId (must be UUID)")
			}
		}
		if !rawIsList(e.Extra) {
			return errors.New("EXIT extra must be a list")
		}
		if !rawIsObject(e.DeviceMeta) {
			return errors.New("EXIT deviceMeta must be an object")
		}
	default:
		return fmt.Errorf("Unknown event type: %s", e.Type)
	}
	return nil
}

// rawIsList reports whether raw is absent, JSON null, or a JSON array.
func rawIsList(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	return trimmed[0] == '['
}

// rawIsObject reports whether raw is absent, JSON null, or a JSON object.
func rawIsObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	return trimmed[0] == '{'
}
