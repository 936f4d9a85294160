// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package media

import (
	"slices"
)

// NotAcceptableError is returned by [BestResponseType] when none of the
// client's proposals match any available type.
type NotAcceptableError struct{}

// Error implements the [error] interface.
func (e NotAcceptableError) Error() string {
	return "no suitable content type found"
}

// BestResponseType selects the response content type from the client's
// stated preferences and the types the server can produce. available must
// be non-empty and is ordered by server preference.
//
// Proposals are considered in descending weight order; proposals of equal
// weight keep their header order. A "*/*" proposal matches the server's
// most preferred type immediately. A "basetype/*" proposal matches the
// first available type with that base type. A fully concrete proposal
// requires a literal match. A proposal with a wildcard base type and a
// concrete subtype, e.g. "*/json", is not given wildcard treatment and
// falls through to the literal match, which it can never satisfy.
func BestResponseType(accept *Accept, available []Type) (Type, error) {
	if len(available) == 0 {
		return Type{}, NotAcceptableError{}
	}
	if accept == nil {
		// No preference stated, default to the server's first choice.
		return available[0], nil
	}

	proposals := slices.Clone(accept.Proposals())
	slices.SortStableFunc(proposals, func(a, b Proposal) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})

	for _, proposed := range proposals {
		if proposed.Type.Base() == "*" && proposed.Type.Sub() == "*" {
			return available[0], nil
		}
		if proposed.Type.Sub() == "*" && proposed.Type.Base() != "*" {
			for _, typ := range available {
				if typ.Base() == proposed.Type.Base() {
					return typ, nil
				}
			}
			continue
		}
		if slices.Contains(available, proposed.Type) {
			return proposed.Type, nil
		}
	}

	if accept.Wildcard() {
		return available[0], nil
	}
	return Type{}, NotAcceptableError{}
}
