package model

import (
	"github.com/GitRowin/orderedmapjson"
)

// Record keeps insertion order when marshalled to JSON.
type Record = orderedmapjson.AnyOrderedMap

func NewRecord() *Record {
	record := orderedmapjson.NewAnyOrderedMap()
	record.SetEscapeHTML(false)
	return record
}

// ToMap converts a record to a map.
func ToMap(record *Record) map[string]interface{} {
	recordMap := make(map[string]interface{})
	for k, v := range record.AllFromFront() {
		recordMap[k] = v
	}
	return recordMap
}
