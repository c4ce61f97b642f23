//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"testing"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/stretchr/testify/assert"
)

func TestMergeMetadata(t *testing.T) {
	static := map[string]string{"pod": "pod-1", "region": "us-east-1"}

	tests := []struct {
		name     string
		static   map[string]string
		entry    types.LogEntry
		expected interface{}
	}{
		{
			name:     "no static metadata leaves entry alone",
			static:   nil,
			entry:    types.LogEntry{"prompt": "p"},
			expected: nil,
		},
		{
			name:     "adds metadata to an entry without any",
			static:   static,
			entry:    types.LogEntry{"prompt": "p"},
			expected: map[string]interface{}{"pod": "pod-1", "region": "us-east-1"},
		},
		{
			name:   "entry metadata takes precedence",
			static: static,
			entry:  types.LogEntry{"metadata": map[string]interface{}{"pod": "mine", "k": 1}},
			expected: map[string]interface{}{
				"pod":    "mine",
				"k":      1,
				"region": "us-east-1",
			},
		},
		{
			name:     "non-map metadata is not replaced",
			static:   static,
			entry:    types.LogEntry{"metadata": "opaque"},
			expected: "opaque",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeMetadata(tt.static, tt.entry)
			assert.Equal(t, tt.expected, got["metadata"])
		})
	}
}
