package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// SlotStatus represents the availability state of a single slot
type SlotStatus string

const (
	SlotAvailable       SlotStatus = "available"
	SlotOnCall          SlotStatus = "on_call"
	SlotPartiallyFilled SlotStatus = "partially_filled"
	SlotFilled          SlotStatus = "filled"
	SlotClosed          SlotStatus = "closed"
)

// statusRank порядок "строгости" статусов: переходы возможны только вверх,
// поэтому filled/closed терминальны в рамках одного расчёта
var statusRank = map[SlotStatus]int{
	SlotAvailable:       0,
	SlotOnCall:          1,
	SlotPartiallyFilled: 2,
	SlotFilled:          3,
	SlotClosed:          4,
}

// BookingRef компактная ссылка на бронь для отображения в слоте
type BookingRef struct {
	ID          int64 `json:"id"`
	PlayerCount int   `json:"playerCount"`
	SlotCount   int   `json:"slotCount"`
	Locked      bool  `json:"locked"`
}

// NewBookingRef creates a BookingRef from a booking
func NewBookingRef(b *Booking) BookingRef {
	return BookingRef{
		ID:          b.ID,
		PlayerCount: b.PlayerCount,
		SlotCount:   b.SlotCount,
		Locked:      b.Locked,
	}
}

// SlotEntry availability of one slot
type SlotEntry struct {
	Status         SlotStatus   `json:"status"`
	AvailableSpots int          `json:"availableSpots"`
	Bookings       []BookingRef `json:"bookings,omitempty"`
}

// Upgrade moves the entry to the given status if it is more restrictive than the current one
// Never downgrades: filled and closed are terminal
func (e *SlotEntry) Upgrade(status SlotStatus) {
	if statusRank[status] > statusRank[e.Status] {
		e.Status = status
	}
}

// SortBookings приводит список броней слота к детерминированному порядку
func (e *SlotEntry) SortBookings() {
	sort.Slice(e.Bookings, func(a, b int) bool {
		return e.Bookings[a].ID < e.Bookings[b].ID
	})
}

// SlotMap упорядоченная карта "HH:MM" -> SlotEntry
// Порядок вставки (хронологический) сохраняется при итерации и JSON-сериализации
type SlotMap struct {
	keys    []string
	entries map[string]*SlotEntry
}

// NewSlotMap creates an empty slot map
func NewSlotMap() *SlotMap {
	return &SlotMap{entries: make(map[string]*SlotEntry)}
}

// Set adds or replaces the entry for key, preserving first-insertion order
func (m *SlotMap) Set(key string, entry *SlotEntry) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = entry
}

// Get returns the entry for key
func (m *SlotMap) Get(key string) (*SlotEntry, bool) {
	entry, ok := m.entries[key]
	return entry, ok
}

// Keys returns the keys in insertion order
func (m *SlotMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries
func (m *SlotMap) Len() int {
	return len(m.keys)
}

// MarshalJSON serializes the map as a JSON object with keys in insertion order
func (m *SlotMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		entryData, err := json.Marshal(m.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(entryData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the map preserving the key order of the JSON object
func (m *SlotMap) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.entries = make(map[string]*SlotEntry)

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("slot map: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("slot map: expected string key, got %v", keyTok)
		}

		var entry SlotEntry
		if err := dec.Decode(&entry); err != nil {
			return err
		}
		m.Set(key, &entry)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
