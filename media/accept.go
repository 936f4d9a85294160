// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package media

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Proposal is a single content type a client has stated it accepts,
// along with the q-value weight it assigned.
type Proposal struct {
	Type   Type
	Weight float64
}

// Accept is a client's parsed Accept header: an ordered list of weighted
// content type proposals, plus whether the header carried a bare "*"
// wildcard entry.
//
// An Accept is constructed once per request by [ParseAccept] and is not
// modified afterwards.
type Accept struct {
	proposals []Proposal
	wildcard  bool
}

// InvalidAcceptError is returned by [ParseAccept] when an Accept header
// element cannot be parsed.
type InvalidAcceptError struct {
	Value string
	Cause error
}

// Error implements the [error] interface.
func (e InvalidAcceptError) Error() string {
	return fmt.Sprintf("invalid accept header element %q: %v", e.Value, e.Cause)
}

// Unwrap returns the underlying parse failure.
func (e InvalidAcceptError) Unwrap() error {
	return e.Cause
}

// ParseAccept parses the Accept header(s) of h.
//
// It returns nil, without error, if no Accept header is present. Header
// order is preserved so that proposals of equal weight keep their relative
// position during negotiation.
func ParseAccept(h http.Header) (*Accept, error) {
	vals := h.Values(AcceptHeader)
	if len(vals) == 0 {
		return nil, nil
	}

	accept := &Accept{}
	for _, line := range vals {
		for part := range strings.SplitSeq(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			name, weight, err := parseElement(part)
			if err != nil {
				return nil, err
			}
			if name == "*" {
				accept.wildcard = true
				continue
			}

			typ, err := Parse(name)
			if err != nil {
				return nil, InvalidAcceptError{Value: part, Cause: err}
			}
			accept.proposals = append(accept.proposals, Proposal{
				Type:   typ,
				Weight: weight,
			})
		}
	}
	return accept, nil
}

func parseElement(s string) (string, float64, error) {
	name, params, _ := strings.Cut(s, ";")
	name = strings.TrimSpace(name)

	weight := 1.0
	for param := range strings.SplitSeq(params, ";") {
		v, ok := strings.CutPrefix(strings.TrimSpace(param), "q=")
		if !ok {
			continue
		}

		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", 0, InvalidAcceptError{Value: s, Cause: err}
		}
		weight = q
	}
	return name, weight, nil
}

// Wildcard reports whether the header carried a bare "*" entry.
func (a *Accept) Wildcard() bool {
	return a.wildcard
}

// Proposals returns the proposals in header order.
func (a *Accept) Proposals() []Proposal {
	return a.proposals
}
