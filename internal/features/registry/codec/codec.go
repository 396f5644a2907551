// Package codec translates the registry document to and from its stored
// byte representation.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/models"
)

// ErrMalformed is returned when a stored payload is present but does not
// decode into a registry document. An absent payload is not malformed, it
// is the empty registry.
var ErrMalformed = errors.New("malformed registry document")

// Document is the unit of storage: the full gift list plus the id counter.
// NextID is persisted with the list so ids stay monotonic even after the
// record holding the maximum id is deleted.
type Document struct {
	NextID int           `json:"nextId"`
	Gifts  []models.Gift `json:"gifts"`
}

// Find returns a pointer to the gift with the given id, or nil.
func (d *Document) Find(id int) *models.Gift {
	for i := range d.Gifts {
		if d.Gifts[i].ID == id {
			return &d.Gifts[i]
		}
	}
	return nil
}

// Remove deletes the gift with the given id and returns it, or nil if the
// id is absent.
func (d *Document) Remove(id int) *models.Gift {
	for i := range d.Gifts {
		if d.Gifts[i].ID == id {
			removed := d.Gifts[i]
			d.Gifts = append(d.Gifts[:i], d.Gifts[i+1:]...)
			return &removed
		}
	}
	return nil
}

// Decode parses a stored payload. A nil or empty payload decodes to the
// empty registry. A bare JSON array is the legacy layout without the id
// counter; it is upgraded in memory with NextID = max(id)+1. Anything else
// that fails to parse is reported as malformed, never coerced to empty.
func Decode(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &Document{Gifts: []models.Gift{}}, nil
	}

	var doc Document
	switch data[0] {
	case '[':
		var gifts []models.Gift
		if err := json.Unmarshal(data, &gifts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		doc = Document{Gifts: gifts}
	case '{':
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected leading byte %q", ErrMalformed, data[0])
	}

	if doc.Gifts == nil {
		doc.Gifts = []models.Gift{}
	}

	seen := make(map[int]bool, len(doc.Gifts))
	maxID := -1
	for i := range doc.Gifts {
		g := &doc.Gifts[i]
		if seen[g.ID] {
			return nil, fmt.Errorf("%w: duplicate gift id %d", ErrMalformed, g.ID)
		}
		seen[g.ID] = true
		if g.ID > maxID {
			maxID = g.ID
		}
		if g.Images == nil {
			g.Images = []string{}
		}
	}

	// Never hand out an id that is already taken, whatever the stored
	// counter claims.
	if doc.NextID <= maxID {
		doc.NextID = maxID + 1
	}

	return &doc, nil
}

// Encode serializes the document for storage.
func Encode(doc *Document) ([]byte, error) {
	if doc.Gifts == nil {
		doc.Gifts = []models.Gift{}
	}
	return json.Marshal(doc)
}
