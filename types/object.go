package types

import (
	"fmt"
	"strconv"
)

// ObjectID is the host runtime's identity handle for a managed object.
// It is opaque to the tracer and only compared for equality. The zero
// value means "no object".
type ObjectID uint64

// ZeroObjectID is the null object identity
var ZeroObjectID = ObjectID(0)

func (o ObjectID) String() string {
	return strconv.FormatUint(uint64(o), 10)
}

// TypeTag is the coarse classification the host runtime assigns to an
// object at allocation time
type TypeTag uint8

const (
	TagNone TypeTag = iota
	TagObject
	TagClass
	TagModule
	TagString
	TagSymbol
	TagArray
	TagMap
	TagStruct
	TagInt
	TagFloat
	TagBool
	TagNil
	TagRange
	TagRegexp
	TagFile
	TagFunc
	TagData
)

// TagCount is the number of defined type tags
const TagCount = int(TagData) + 1

var tagNames = [TagCount]string{
	TagNone:   "none",
	TagObject: "object",
	TagClass:  "class",
	TagModule: "module",
	TagString: "string",
	TagSymbol: "symbol",
	TagArray:  "array",
	TagMap:    "map",
	TagStruct: "struct",
	TagInt:    "int",
	TagFloat:  "float",
	TagBool:   "bool",
	TagNil:    "nil",
	TagRange:  "range",
	TagRegexp: "regexp",
	TagFile:   "file",
	TagFunc:   "func",
	TagData:   "data",
}

func (t TypeTag) String() string {
	if int(t) >= len(tagNames) {
		return "unknown"
	}

	return tagNames[t]
}

func (t TypeTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TypeTag) UnmarshalText(input []byte) error {
	tag, ok := tagByName[string(input)]
	if !ok {
		return fmt.Errorf("unknown type tag %q", string(input))
	}

	*t = tag

	return nil
}

var tagByName = func() map[string]TypeTag {
	m := make(map[string]TypeTag, TagCount)
	for i, name := range tagNames {
		m[name] = TypeTag(i)
	}

	return m
}()
