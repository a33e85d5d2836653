package tracer

import (
	"fmt"
)

// Attribute names accepted by Configure
const (
	AttrPath  = "path"
	AttrLine  = "line"
	AttrType  = "type"
	AttrClass = "class"
)

// attrSet is the bitset of attributes forming the aggregation key
type attrSet uint8

const (
	attrPath attrSet = 1 << iota
	attrLine
	attrType
	attrClass
)

// keyAttrOrder fixes the slot order of composite keys. Keys always lay
// out their configured attributes in this order, independent of the
// order they were requested in.
var keyAttrOrder = [maxKeySlots]attrSet{attrPath, attrLine, attrType, attrClass}

var attrNames = map[attrSet]string{
	attrPath:  AttrPath,
	attrLine:  AttrLine,
	attrType:  AttrType,
	attrClass: AttrClass,
}

var attrsByName = map[string]attrSet{
	AttrPath:  attrPath,
	AttrLine:  attrLine,
	AttrType:  attrType,
	AttrClass: attrClass,
}

// has reports whether the set contains the given attribute
func (a attrSet) has(attr attrSet) bool {
	return a&attr != 0
}

// names returns the contained attribute names in key slot order
func (a attrSet) names() []string {
	names := make([]string, 0, maxKeySlots)

	for _, attr := range keyAttrOrder {
		if a.has(attr) {
			names = append(names, attrNames[attr])
		}
	}

	return names
}

// parseAttrs resolves attribute names into a bitset, rejecting the
// whole input on the first unrecognized name
func parseAttrs(names []string) (attrSet, error) {
	var set attrSet

	for _, name := range names {
		attr, ok := attrsByName[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}

		set |= attr
	}

	return set, nil
}
