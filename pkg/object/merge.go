// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

// Merge lays overlay on top of base and returns the resulting document.
//
//   - keys holding mappings on both sides are merged recursively
//   - a nil value in overlay removes the key from the result
//   - any other overlay value replaces the base value, lists included
//   - keys present on one side only are kept unless their value is nil
//
// Neither input is modified. Self-referential input is rejected with
// ErrCyclicDocument.
func Merge(base, overlay Document) (Document, error) {
	if err := checkAcyclic(base); err != nil {
		return nil, err
	}
	if err := checkAcyclic(overlay); err != nil {
		return nil, err
	}
	return mergeMaps(base, overlay), nil
}

func mergeMaps(base, overlay map[string]interface{}) Document {
	result := make(Document, len(base)+len(overlay))
	for k, baseVal := range base {
		overlayVal, inOverlay := overlay[k]
		if !inOverlay {
			if baseVal != nil {
				result[k] = baseVal
			}
			continue
		}
		if overlayVal == nil {
			continue
		}
		baseMap, baseIsMap := asMap(baseVal)
		overlayMap, overlayIsMap := asMap(overlayVal)
		if baseIsMap && overlayIsMap {
			result[k] = map[string]interface{}(mergeMaps(baseMap, overlayMap))
			continue
		}
		result[k] = overlayVal
	}
	for k, overlayVal := range overlay {
		if _, inBase := base[k]; inBase || overlayVal == nil {
			continue
		}
		result[k] = overlayVal
	}
	return result
}
