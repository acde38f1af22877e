// Package flatten converts nested partial-update payloads into dotted-path
// field mappings for targeted document merges.
package flatten

import "strings"

// Flatten turns one level of nesting into dotted paths: {"address": {"city":
// "X"}} becomes {"address.city": "X"}. Arrays are taken wholesale, never
// expanded element-wise. Nil values (JSON null, or absent-on-purpose fields)
// are dropped. Anything nested deeper than one level rides along verbatim as
// the value at its one-level path; the merge is deliberately shallow and
// callers depend on that cutoff.
func Flatten(update map[string]any) map[string]any {
	fields := make(map[string]any, len(update))
	for key, value := range update {
		if value == nil {
			continue
		}
		nested, ok := value.(map[string]any)
		if !ok {
			fields[key] = value
			continue
		}
		for nestedKey, nestedValue := range nested {
			if nestedValue == nil {
				continue
			}
			fields[key+"."+nestedKey] = nestedValue
		}
	}
	return fields
}

// ApplySet applies a flattened field mapping to a nested document in place,
// creating intermediate objects as needed. Paths named in fields are the only
// thing that changes; everything else in doc is untouched. This is the
// "$set" half of the contract Flatten produces input for.
func ApplySet(doc map[string]any, fields map[string]any) {
	for path, value := range fields {
		segments := strings.Split(path, ".")
		node := doc
		for _, segment := range segments[:len(segments)-1] {
			child, ok := node[segment].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[segment] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = value
	}
}
