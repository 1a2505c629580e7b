// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import "slices"

// SameShape reports whether two schemas describe the same structure.
// Descriptions are ignored.
func SameShape(a, b *Schema) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindPrimitive:
		return a.Type == b.Type
	case KindArray:
		return SameShape(a.Items, b.Items)
	case KindRef:
		return a.Ref == b.Ref
	case KindEnum:
		return slices.Equal(a.Values, b.Values)
	case KindObject:
		if a.Name != b.Name || a.AdditionalProperties != b.AdditionalProperties {
			return false
		}
		if len(a.Properties) != len(b.Properties) {
			return false
		}
		for i, pa := range a.Properties {
			pb := b.Properties[i]
			if pa.Name != pb.Name || a.IsRequired(pa.Name) != b.IsRequired(pb.Name) {
				return false
			}
			if !SameShape(pa.Schema, pb.Schema) {
				return false
			}
		}
		return true
	}
	return false
}
