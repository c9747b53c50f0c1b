// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yoctoalex/xcctl/pkg/stats"
)

func TestResultErrorFromStats(t *testing.T) {
	testCases := map[string]struct {
		stats       stats.Stats
		expectedMsg string
	}{
		"no failures": {
			stats: stats.Stats{ApplyStats: stats.ApplyStats{Created: 2}},
		},
		"failed objects": {
			stats:       stats.Stats{ApplyStats: stats.ApplyStats{Failed: 1}, DeleteStats: stats.DeleteStats{Failed: 1}},
			expectedMsg: "2 objects failed",
		},
		"timed out objects": {
			stats:       stats.Stats{WaitStats: stats.WaitStats{Timeout: 1}},
			expectedMsg: "1 objects were not ready before timeout",
		},
		"both": {
			stats: stats.Stats{
				FetchStats: stats.FetchStats{Failed: 1},
				WaitStats:  stats.WaitStats{Timeout: 1},
			},
			expectedMsg: "1 objects failed, 1 objects were not ready before timeout",
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			err := ResultErrorFromStats(tc.stats)
			if tc.expectedMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.expectedMsg)
		})
	}
}
