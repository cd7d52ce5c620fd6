package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a normalized, directly serializable view of a stored document.
type Record map[string]any

// ID returns the record identifier.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// TimeLayout is the ISO-8601 form used for createdAt/updatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Normalize converts a raw stored document into a Record: the storage id
// becomes the string field "id", declared fields are passed through as plain
// Go values, timestamps become ISO-8601 strings and everything else is dropped.
func (s *Schema) Normalize(doc bson.M) Record {
	if doc == nil {
		return nil
	}
	out := Record{}
	switch id := doc[fieldID].(type) {
	case primitive.ObjectID:
		out["id"] = id.Hex()
	case string:
		out["id"] = id
	}
	for _, f := range s.Fields {
		v, ok := doc[f.Name]
		if !ok {
			continue
		}
		out[f.Name] = plain(f, v)
	}
	for _, k := range []string{fieldCreatedAt, fieldUpdatedAt} {
		if t, ok := asTime(doc[k]); ok {
			out[k] = t.UTC().Format(TimeLayout)
		}
	}
	return out
}

func plain(f Field, v any) any {
	switch f.Kind {
	case Int:
		if n, ok := toInt64(v); ok {
			return n
		}
	case StringList:
		if l, ok := toStrings(v); ok {
			return l
		}
		return []string{}
	case Bool:
		if b, ok := v.(bool); ok {
			return b
		}
		return false
	default:
		if s, ok := v.(string); ok {
			return s
		}
	}
	return f.zero()
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case primitive.DateTime:
		return t.Time(), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}
