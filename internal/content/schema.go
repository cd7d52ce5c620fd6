package content

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Kind is the storage type of a declared field.
type Kind int

const (
	String Kind = iota
	Int
	Bool
	StringList
	Enum
)

// Field declares one editable field of a content type.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Rules is a go-playground/validator tag applied to non-empty values,
	// e.g. "email", "url", "min=1,max=5".
	Rules string
	// Values is the closed vocabulary of an Enum field.
	Values  []string
	Default any
}

// SortKey orders list results.
type SortKey struct {
	Field string
	Desc  bool
}

// Schema describes one content type: its collection and field list.
type Schema struct {
	Type       string
	Collection string
	Fields     []Field
	Sort       []SortKey
	// Defaults is the payload a singleton document is materialized from.
	Defaults Record
}

const (
	fieldID        = "_id"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// reserved keys are maintained by the content layer and ignored on input.
var reserved = map[string]bool{"id": true, fieldID: true, fieldCreatedAt: true, fieldUpdatedAt: true}

func (s *Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Schema) sortDoc() bson.D {
	d := bson.D{}
	for _, k := range s.Sort {
		dir := 1
		if k.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: k.Field, Value: dir})
	}
	// ties fall back to insertion order
	return append(d, bson.E{Key: fieldID, Value: 1})
}
