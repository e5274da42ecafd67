package generator

import "github.com/pb33f/libopenapi/orderedmap"

// Object is a JSON object sample that keeps the property order of its schema
type Object = orderedmap.Map[string, any]

// NewObject creates an empty ordered object
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// Keys returns the keys of obj in insertion order
func Keys(obj *Object) []string {
	keys := []string{}
	if obj == nil {
		return keys
	}
	for pair := obj.First(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key())
	}
	return keys
}
