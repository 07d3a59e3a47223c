package schema

// Repo represents a collection of schema files and their object definitions.
type Repo struct {
	Files map[string]*File `json:"files" yaml:"files"`
}

// File represents a single schema descriptor file.
type File struct {
	Name    string    `json:"name" yaml:"name"`       // apps.yaml
	Package string    `json:"package" yaml:"package"` // namespace prefix
	Objects []*Object `json:"objects" yaml:"objects"` // object definitions
}

// Object describes one encodable object type: its fields, schema revision,
// retired field ids and migration rules. The codec consumes this table
// directly; there is no generated per-type code.
type Object struct {
	Name          string          `json:"name" yaml:"name"`
	Version       int32           `json:"version" yaml:"version"`
	Fields        []*Field        `json:"fields" yaml:"fields"`
	ReservedIDs   []int32         `json:"reserved_ids" yaml:"reserved_ids"`
	RemovedParams []*RemovedParam `json:"removed_params" yaml:"removed_params"`
	ElideDefaults bool            `json:"elide_defaults" yaml:"elide_defaults"`
}

// Field represents one object field.
type Field struct {
	Name string    `json:"name" yaml:"name"`
	ID   int32     `json:"id" yaml:"id"`
	Type FieldType `json:"type" yaml:"type"`

	// Default is substituted by the decoder when the field is absent from
	// the buffer. A nil Default means the kind's zero value.
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`

	// WriteIfAbsent makes the encoder emit an explicit null marker for a
	// nil value instead of omitting the field entirely, so a reader can
	// tell "present but null" from "never written".
	WriteIfAbsent bool `json:"write_if_absent,omitempty" yaml:"write_if_absent,omitempty"`
}

// RemovedParam records a field that existed in a past schema revision. Data
// written by old encoders may still carry it; the decoder reads the old
// value under its old id and folds it into the named target field when that
// field is itself absent from the buffer.
type RemovedParam struct {
	ID      int32      `json:"id" yaml:"id"`
	Type    FieldType  `json:"type" yaml:"type"`
	Target  string     `json:"target" yaml:"target"`
	Convert Conversion `json:"convert" yaml:"convert"`
}

// Conversion names how a removed param's old value maps onto its target
// field. Conversions are declarative so schemas stay loadable from disk.
type Conversion string

const (
	ConvertNone          Conversion = ""                // identical kinds
	ConvertStringToInt64 Conversion = "string-to-int64" // strconv parse
	ConvertStringToInt32 Conversion = "string-to-int32"
	ConvertInt32ToInt64  Conversion = "int32-to-int64"
	ConvertInt64ToString Conversion = "int64-to-string"
)

// Reserved field ids. Schemas may not assign these to regular fields.
const (
	// VersionFieldID carries the object's schema revision. Always written,
	// informative only: readers never reject an object over its value.
	VersionFieldID int32 = 1000

	// IndicatorFieldID carries the set of non-zero field ids when default
	// elision is enabled on the writer side.
	IndicatorFieldID int32 = 1001

	// MaxFieldID is the largest assignable field id (header id bits).
	MaxFieldID int32 = 0xFFFF
)

// FieldType represents field type information.
type FieldType struct {
	Kind       Kind       `json:"kind" yaml:"kind"`
	ObjectType string     `json:"object_type,omitempty" yaml:"object_type,omitempty"` // for KindObject
	Element    *FieldType `json:"element,omitempty" yaml:"element,omitempty"`         // for KindList
	Value      *FieldType `json:"value,omitempty" yaml:"value,omitempty"`             // for KindSparseMap (keys are int32)

	// Boxed marks a scalar as nullable: nil is a legal value distinct from
	// the kind's zero.
	Boxed bool `json:"boxed,omitempty" yaml:"boxed,omitempty"`
}

// Kind represents the wire kind of a field.
type Kind string

const (
	KindBool       Kind = "bool"
	KindByte       Kind = "byte"
	KindShort      Kind = "short" // int16
	KindChar       Kind = "char"  // uint16
	KindInt32      Kind = "int32"
	KindInt64      Kind = "int64"
	KindUint32     Kind = "uint32"
	KindUint64     Kind = "uint64"
	KindFloat32    Kind = "float32"
	KindFloat64    Kind = "float64"
	KindString     Kind = "string"
	KindBytes      Kind = "bytes"
	KindBigInt     Kind = "bigint"
	KindBigDecimal Kind = "bigdecimal"
	KindObject     Kind = "object"
	KindList       Kind = "list"
	KindSparseMap  Kind = "sparsemap"
)

// fixedWidth maps fixed scalar kinds to their payload byte count. Narrow
// scalars (bool, byte, short, char) occupy a full 4-byte word so payloads
// stay word-aligned.
var fixedWidth = map[Kind]int{
	KindBool:    4,
	KindByte:    4,
	KindShort:   4,
	KindChar:    4,
	KindInt32:   4,
	KindUint32:  4,
	KindFloat32: 4,
	KindInt64:   8,
	KindUint64:  8,
	KindFloat64: 8,
}

// IsFixed reports whether the kind encodes as a fixed-width inline payload.
func IsFixed(k Kind) bool {
	_, ok := fixedWidth[k]
	return ok
}

// FixedSize returns the payload byte count of a fixed scalar kind, or 0 for
// variable-length kinds.
func FixedSize(k Kind) int {
	return fixedWidth[k]
}

// IsScalar reports whether the kind may be declared Boxed.
func IsScalar(k Kind) bool {
	return IsFixed(k)
}

// FieldByID returns the active field with the given id, or nil.
func (o *Object) FieldByID(id int32) *Field {
	for _, f := range o.Fields {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// FieldByName returns the active field with the given name, or nil.
func (o *Object) FieldByName(name string) *Field {
	for _, f := range o.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// RemovedParamByID returns the removed param declared for id, or nil.
func (o *Object) RemovedParamByID(id int32) *RemovedParam {
	for _, rp := range o.RemovedParams {
		if rp.ID == id {
			return rp
		}
	}
	return nil
}
