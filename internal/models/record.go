// Package models contains the application's record kinds and the tagged
// envelope codec used at the storage boundary.
package models

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the record variants held in the flat collection.
type Kind string

const (
	// KindUser tags a registered account record.
	KindUser Kind = "user"
	// KindRecipe tags a posted recipe record.
	KindRecipe Kind = "recipe"
	// KindFriendship tags a friendship pair record.
	KindFriendship Kind = "friendship"
	// KindMessage tags a direct message record.
	KindMessage Kind = "message"
)

// Record is the closed set of entries the record store holds. Identifiers are
// unique across the whole collection regardless of kind.
type Record interface {
	RecordID() string
	RecordKind() Kind
	// Clone returns a copy deep enough that observers cannot mutate the
	// store's state through a delivered snapshot.
	Clone() Record
}

// CloneAll copies a collection for snapshot delivery.
func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// envelope carries only the discriminant; the concrete fields are decoded in
// a second pass once the kind is known.
type envelope struct {
	Type Kind `json:"type"`
}

// EncodeRecords serializes the whole collection as one JSON array of tagged
// envelopes. The discriminant is written by the codec, never stored on the
// structs themselves.
func EncodeRecords(records []Record) ([]byte, error) {
	out := make([]any, 0, len(records))
	for _, r := range records {
		wrapped, err := wrap(r)
		if err != nil {
			return nil, err
		}
		out = append(out, wrapped)
	}
	return json.Marshal(out)
}

func wrap(r Record) (any, error) {
	switch v := r.(type) {
	case *User:
		return struct {
			Type Kind `json:"type"`
			*User
		}{KindUser, v}, nil
	case *Recipe:
		// Likes is written redundantly for readers of the raw slot; on load
		// it is ignored in favor of the liker set size.
		return struct {
			Type  Kind `json:"type"`
			Likes int  `json:"likes"`
			*Recipe
		}{KindRecipe, v.Likes(), v}, nil
	case *Friendship:
		return struct {
			Type Kind `json:"type"`
			*Friendship
		}{KindFriendship, v}, nil
	case *Message:
		return struct {
			Type Kind `json:"type"`
			*Message
		}{KindMessage, v}, nil
	default:
		return nil, fmt.Errorf("unknown record type %T", r)
	}
}

// DecodeRecords parses a serialized collection. Callers treat any error as an
// empty collection; a malformed slot is recoverable by design.
func DecodeRecords(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		var env envelope
		if err := json.Unmarshal(item, &env); err != nil {
			return nil, err
		}
		rec, err := decodeOne(env.Type, item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeOne(kind Kind, data []byte) (Record, error) {
	switch kind {
	case KindUser:
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			return nil, err
		}
		return &u, nil
	case KindRecipe:
		var r Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		return &r, nil
	case KindFriendship:
		var f Friendship
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &f, nil
	case KindMessage:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}
