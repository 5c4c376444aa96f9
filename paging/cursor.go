package paging

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ncobase/docstore/ecode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Value tags carried inside cursor tokens. Each tag has an explicit
// serialization so values reconstruct exactly on decode.
const (
	tagString = "string"
	tagInt    = "int"
	tagDouble = "double"
	tagBool   = "bool"
	tagDate   = "date"
	tagOID    = "oid"
	tagNull   = "null"
)

// tokenEncoding is URL-safe so tokens survive query strings unescaped.
var tokenEncoding = base64.RawURLEncoding

// TaggedValue is the small sum type carried in cursor payloads: a runtime
// value tagged with enough type information to rebuild it exactly.
type TaggedValue struct {
	Tag   string
	Value any
}

// Cursor is the decoded position marker: the primary sort field value and
// unique id of the last served document, the sort it was minted under, and
// the token format version.
type Cursor struct {
	Value   TaggedValue
	ID      TaggedValue
	Sort    SortSpec
	Version int
}

// cursorPayload is the wire form of a Cursor. Field order is fixed, so
// encoding identical inputs yields identical tokens.
type cursorPayload struct {
	Value   taggedPayload `json:"k"`
	ID      taggedPayload `json:"id"`
	Sort    SortSpec      `json:"s"`
	Version int           `json:"v"`
}

type taggedPayload struct {
	Tag   string          `json:"t"`
	Value json.RawMessage `json:"v,omitempty"`
}

// tagValue classifies a runtime value into its TaggedValue form. Dates are
// carried as Unix milliseconds to match BSON datetime precision; object ids
// are carried as hex.
func tagValue(v any) (TaggedValue, error) {
	switch t := v.(type) {
	case nil:
		return TaggedValue{Tag: tagNull}, nil
	case string:
		return TaggedValue{Tag: tagString, Value: t}, nil
	case bool:
		return TaggedValue{Tag: tagBool, Value: t}, nil
	case int:
		return TaggedValue{Tag: tagInt, Value: int64(t)}, nil
	case int32:
		return TaggedValue{Tag: tagInt, Value: int64(t)}, nil
	case int64:
		return TaggedValue{Tag: tagInt, Value: t}, nil
	case float32:
		return TaggedValue{Tag: tagDouble, Value: float64(t)}, nil
	case float64:
		return TaggedValue{Tag: tagDouble, Value: t}, nil
	case time.Time:
		return TaggedValue{Tag: tagDate, Value: t.UTC().Truncate(time.Millisecond)}, nil
	case primitive.DateTime:
		return TaggedValue{Tag: tagDate, Value: t.Time().UTC()}, nil
	case primitive.ObjectID:
		return TaggedValue{Tag: tagOID, Value: t}, nil
	default:
		return TaggedValue{}, fmt.Errorf("unsupported cursor value type %T", v)
	}
}

// Interface returns the reconstructed runtime value.
func (t TaggedValue) Interface() any {
	return t.Value
}

func (t TaggedValue) payload() (taggedPayload, error) {
	p := taggedPayload{Tag: t.Tag}
	var raw any
	switch t.Tag {
	case tagNull:
		return p, nil
	case tagDate:
		d, ok := t.Value.(time.Time)
		if !ok {
			return p, fmt.Errorf("date value is %T", t.Value)
		}
		raw = d.UnixMilli()
	case tagOID:
		id, ok := t.Value.(primitive.ObjectID)
		if !ok {
			return p, fmt.Errorf("oid value is %T", t.Value)
		}
		raw = id.Hex()
	default:
		raw = t.Value
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return p, err
	}
	p.Value = b
	return p, nil
}

func (p taggedPayload) tagged() (TaggedValue, error) {
	t := TaggedValue{Tag: p.Tag}
	switch p.Tag {
	case tagNull:
		return t, nil
	case tagString:
		var s string
		if err := strictUnmarshal(p.Value, &s); err != nil {
			return t, err
		}
		t.Value = s
	case tagBool:
		var b bool
		if err := strictUnmarshal(p.Value, &b); err != nil {
			return t, err
		}
		t.Value = b
	case tagInt:
		var n int64
		if err := strictUnmarshal(p.Value, &n); err != nil {
			return t, err
		}
		t.Value = n
	case tagDouble:
		var f float64
		if err := strictUnmarshal(p.Value, &f); err != nil {
			return t, err
		}
		t.Value = f
	case tagDate:
		var ms int64
		if err := strictUnmarshal(p.Value, &ms); err != nil {
			return t, err
		}
		t.Value = time.UnixMilli(ms).UTC()
	case tagOID:
		var hex string
		if err := strictUnmarshal(p.Value, &hex); err != nil {
			return t, err
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return t, err
		}
		t.Value = id
	default:
		return t, fmt.Errorf("unknown value tag %q", p.Tag)
	}
	return t, nil
}

func strictUnmarshal(raw json.RawMessage, dest any) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing value")
	}
	return json.Unmarshal(raw, dest)
}

// EncodeCursor builds an opaque token from a served document. It reads the
// primary sort field and the unique id, tags both by runtime type, and packs
// them with the normalized sort and the configured token version. Encoding is
// deterministic: identical (value, id, sort, version) produce equal tokens.
func EncodeCursor(doc map[string]any, primaryField string, sort SortSpec, version int, idField string) (string, error) {
	value, err := tagValue(doc[primaryField])
	if err != nil {
		return "", fmt.Errorf("field %s: %w", primaryField, err)
	}
	id, err := tagValue(doc[idField])
	if err != nil {
		return "", fmt.Errorf("field %s: %w", idField, err)
	}

	vp, err := value.payload()
	if err != nil {
		return "", err
	}
	ip, err := id.payload()
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(cursorPayload{
		Value:   vp,
		ID:      ip,
		Sort:    sort,
		Version: version,
	})
	if err != nil {
		return "", err
	}
	return tokenEncoding.EncodeToString(b), nil
}

// DecodeCursor is the inverse of EncodeCursor. Any malformed, truncated or
// non-conforming token yields ErrInvalidCursor; it never surfaces an internal
// error type and never returns a partially decoded cursor.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCursor, ecode.FieldIsEmpty("cursor"))
	}

	b, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var payload cursorPayload
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidCursor)
	}
	if len(payload.Sort) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCursor, ecode.FieldIsEmpty("sort"))
	}

	value, err := payload.Value.tagged()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	id, err := payload.ID.tagged()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return &Cursor{
		Value:   value,
		ID:      id,
		Sort:    payload.Sort,
		Version: payload.Version,
	}, nil
}

// validateCursorSort requires the cursor's sort to structurally equal the
// request's sort. A mismatch would silently corrupt pagination with
// duplicates or gaps, so it is fatal.
func validateCursorSort(cursorSort, requestSort SortSpec) error {
	if !cursorSort.Equal(requestSort) {
		return fmt.Errorf("%w: cursor minted for %q, request uses %q", ErrCursorSortMismatch, cursorSort.String(), requestSort.String())
	}
	return nil
}

// validateCursorVersion requires exact equality with the configured token
// version. Old tokens are rejected explicitly rather than mis-decoded.
func validateCursorVersion(cursorVersion, currentVersion int) error {
	if cursorVersion != currentVersion {
		return fmt.Errorf("%w: token version %d, engine version %d", ErrCursorVersionMismatch, cursorVersion, currentVersion)
	}
	return nil
}
