//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
)

const metadataKey = "metadata"

// mergeMetadata adds static metadata to entry using the precedence
//
//	entry metadata > static metadata
//
// The entry's metadata map is owned by the entry, so it is updated in place.
// A non-map metadata value is left untouched.
func mergeMetadata(static map[string]string, entry types.LogEntry) types.LogEntry {
	if len(static) == 0 {
		return entry
	}

	var md map[string]interface{}
	switch v := entry[metadataKey].(type) {
	case nil:
		md = make(map[string]interface{}, len(static))
	case map[string]interface{}:
		md = v
	default:
		return entry
	}

	for k, v := range static {
		if _, ok := md[k]; !ok {
			md[k] = v
		}
	}
	entry[metadataKey] = md
	return entry
}
