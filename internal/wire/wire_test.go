package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventID = "29f0a6b2-c9f5-4dbc-a44c-e60d40337a4d"
	testEntryID = "018f65a2-7d3c-7b6a-9c1e-2f4a5b6c7d8e"
	testExitID  = "018f65a2-8e4d-7c7b-8d2f-3a5b6c7d8e9f"
)

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr string
	}{
		{
			name:    "missing eventId",
			event:   Event{Type: EventEntry},
			wantErr: "Missing eventId",
		},
		{
			name:    "malformed eventId",
			event:   Event{EventID: "not-a-uuid", Type: EventEntry},
			wantErr: "Invalid eventId (must be UUID)",
		},
		{
			name:    "entry without roll",
			event:   Event{EventID: testEventID, Type: EventEntry, EntryID: testEntryID},
			wantErr: "ENTRY requires entryId and roll",
		},
		{
			name:    "entry without entryId",
			event:   Event{EventID: testEventID, Type: EventEntry, Roll: "2023CS10140"},
			wantErr: "ENTRY requires entryId and roll",
		},
		{
			name:    "entry with malformed entryId",
			event:   Event{EventID: testEventID, Type: EventEntry, EntryID: "xyz", Roll: "2023CS10140"},
			wantErr: "Invalid entryId (must be UUID)",
		},
		{
			name: "entry extra not a list",
			event: Event{
				EventID: testEventID, Type: EventEntry, EntryID: testEntryID,
				Roll: "2023CS10140", Extra: json.RawMessage(`{"k":"v"}`),
			},
			wantErr: "ENTRY extra must be a list",
		},
		{
			name:    "expired-seen shares entry rules",
			event:   Event{EventID: testEventID, Type: EventEntryExpiredSeen, Roll: "2023CS10140"},
			wantErr: "ENTRY requires entryId and roll",
		},
		{
			name:    "exit without exitId",
			event:   Event{EventID: testEventID, Type: EventExit, Roll: "2023CS10140"},
			wantErr: "EXIT requires exitId and roll",
		},
		{
			name:    "exit with malformed exitId",
			event:   Event{EventID: testEventID, Type: EventExit, ExitID: "xyz", Roll: "2023CS10140"},
			wantErr: "Invalid exitId (must be UUID)",
		},
		{
			name: "exit with malformed entryId",
			event: Event{
				EventID: testEventID, Type: EventExit, ExitID: testExitID,
				EntryID: "xyz", Roll: "2023CS10140",
			},
			wantErr: "Invalid entryId (must be UUID)",
		},
		{
			name: "exit extra not a list",
			event: Event{
				EventID: testEventID, Type: EventExit, ExitID: testExitID,
				Roll: "2023CS10140", Extra: json.RawMessage(`"tablet"`),
			},
			wantErr: "EXIT extra must be a list",
		},
		{
			name: "exit deviceMeta not an object",
			event: Event{
				EventID: testEventID, Type: EventExit, ExitID: testExitID,
				Roll: "2023CS10140", DeviceMeta: json.RawMessage(`[1,2]`),
			},
			wantErr: "EXIT deviceMeta must be an object",
		},
		{
			name:    "unknown type",
			event:   Event{EventID: testEventID, Type: "PING"},
			wantErr: "Unknown event type: PING",
		},
		{
			name: "valid entry",
			event: Event{
				EventID: testEventID, Type: EventEntry, EntryID: testEntryID,
				Roll: "2023CS10140", Extra: json.RawMessage(`["tablet"]`),
			},
		},
		{
			name: "valid expired-seen",
			event: Event{
				EventID: testEventID, Type: EventEntryExpiredSeen,
				EntryID: testEntryID, Roll: "2023CS10140",
			},
		},
		{
			name: "valid orphan exit without entryId",
			event: Event{
				EventID: testEventID, Type: EventExit, ExitID: testExitID,
				Roll: "2023CS10140", DeviceMeta: json.RawMessage(`{"claimedEntryId":"x"}`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestEventMarshalFieldNames(t *testing.T) {
	laptop := "dell-xps"
	ev := Event{
		EventID:    testEventID,
		Type:       EventExit,
		EntryID:    testEntryID,
		Roll:       "2023CS10140",
		ScannedAt:  NewISOTime(time.Date(2025, 3, 9, 18, 4, 5, 0, time.UTC)),
		Laptop:     &laptop,
		Extra:      json.RawMessage(`["tablet"]`),
		DeviceMeta: json.RawMessage(`{"expired":false}`),
		DeviceID:   "gate-01",
		Source:     "RFID",
		OS:         "linux",
		ExitID:     testExitID,
		ExitFlag:   ExitFlagNormal,
	}

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"eventId": "29f0a6b2-c9f5-4dbc-a44c-e60d40337a4d",
		"type": "EXIT",
		"entryId": "018f65a2-7d3c-7b6a-9c1e-2f4a5b6c7d8e",
		"roll": "2023CS10140",
		"scannedAt": "2025-03-09T18:04:05Z",
		"laptop": "dell-xps",
		"extra": ["tablet"],
		"deviceMeta": {"expired": false},
		"deviceId": "gate-01",
		"source": "RFID",
		"os": "linux",
		"exitId": "018f65a2-8e4d-7c7b-8d2f-3a5b6c7d8e9f",
		"exitFlag": "NORMAL_EXIT"
	}`, string(raw))
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "rfc3339 zulu",
			in:   "2025-03-09T18:04:05Z",
			want: time.Date(2025, 3, 9, 18, 4, 5, 0, time.UTC),
		},
		{
			name: "microseconds with utc offset",
			in:   "2025-03-09T18:04:05.123456+00:00",
			want: time.Date(2025, 3, 9, 18, 4, 5, 123456000, time.UTC),
		},
		{
			name: "positive offset",
			in:   "2025-03-09T18:04:05+05:30",
			want: time.Date(2025, 3, 9, 12, 34, 5, 0, time.UTC),
		},
		{
			name: "space separator with offset",
			in:   "2025-03-09 18:04:05.500000+00:00",
			want: time.Date(2025, 3, 9, 18, 4, 5, 500000000, time.UTC),
		},
		{
			name: "naive taken as utc",
			in:   "2025-03-09T18:04:05",
			want: time.Date(2025, 3, 9, 18, 4, 5, 0, time.UTC),
		},
		{
			name: "naive with space separator",
			in:   "2025-03-09 18:04:05",
			want: time.Date(2025, 3, 9, 18, 4, 5, 0, time.UTC),
		},
		{
			name:    "garbage",
			in:      "ninth of march",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestISOTimeLenientDecode(t *testing.T) {
	var ev Event

	err := json.Unmarshal([]byte(`{"eventId":"x","scannedAt":"2025-03-09 18:04:05.123456+00:00"}`), &ev)
	require.NoError(t, err)
	require.NotNil(t, ev.ScannedAt)
	assert.True(t, ev.ScannedAt.Equal(time.Date(2025, 3, 9, 18, 4, 5, 123456000, time.UTC)))

	// Null, numeric and unparseable timestamps decode as the zero time
	// rather than failing the whole event.
	for _, body := range []string{
		`{"eventId":"x","scannedAt":null}`,
		`{"eventId":"x","scannedAt":12345}`,
		`{"eventId":"x","scannedAt":"whenever"}`,
	} {
		var e Event
		require.NoError(t, json.Unmarshal([]byte(body), &e), body)
		if e.ScannedAt != nil {
			assert.True(t, e.ScannedAt.IsZero(), body)
		}
	}
}
