// Package query defines the logical budget query and its composite cache key encoding.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// AllToken stands in for any dimension the query leaves unscoped
	AllToken = "all"

	keySeparator     = "|"
	grouperSeparator = ","
)

// Query is the semantic identity of a budget data request
type Query struct {
	PeriodID      string `json:"period_id"`
	EstudioID     *int   `json:"estudio_id,omitempty"`
	GrouperIDs    []int  `json:"grouper_ids,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Key is the single-string cache identity of a Query
type Key string

func (k Key) String() string {
	return string(k)
}

// Tokens holds the encoded value of every query dimension in key order
type Tokens struct {
	Period   string
	Estudio  string
	Groupers string
	Payment  string
}

// Key joins the tokens in fixed order
func (t Tokens) Key() Key {
	return Key(strings.Join([]string{t.Period, t.Estudio, t.Groupers, t.Payment}, keySeparator))
}

// EstudioID returns a pointer to id, for building queries inline
func EstudioID(id int) *int {
	return &id
}

// Tokenize encodes each dimension of q. Absent dimensions become AllToken and
// grouper ids are sorted and de-duplicated so permutations collapse to one key.
func Tokenize(q Query) Tokens {
	return Tokens{
		Period:   periodToken(q.PeriodID),
		Estudio:  estudioToken(q.EstudioID),
		Groupers: groupersToken(q.GrouperIDs),
		Payment:  paymentToken(q.PaymentMethod),
	}
}

// Encode produces the composite cache key for q
func Encode(q Query) Key {
	return Tokenize(q).Key()
}

// Key is shorthand for Encode(q)
func (q Query) Key() Key {
	return Encode(q)
}

// HasGrouperScope reports whether q is narrowed to specific groupers
func (q Query) HasGrouperScope() bool {
	return len(q.GrouperIDs) > 0
}

// HasPaymentScope reports whether q is narrowed to a payment method other than all
func (q Query) HasPaymentScope() bool {
	return paymentToken(q.PaymentMethod) != AllToken
}

// WithoutGroupers returns a copy of q covering every grouper
func (q Query) WithoutGroupers() Query {
	q.GrouperIDs = nil
	return q
}

// WithAllPayments returns a copy of q covering every payment method
func (q Query) WithAllPayments() Query {
	q.PaymentMethod = AllToken
	return q
}

func (q Query) String() string {
	return string(q.Key())
}

// ParseGrouperIDs parses a comma-separated list such as "3,1,2"
func ParseGrouperIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == AllToken {
		return nil, nil
	}

	parts := strings.Split(s, grouperSeparator)
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid grouper id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func periodToken(periodID string) string {
	periodID = strings.TrimSpace(periodID)
	if periodID == "" {
		return AllToken
	}
	return periodID
}

func estudioToken(estudioID *int) string {
	if estudioID == nil {
		return AllToken
	}
	return strconv.Itoa(*estudioID)
}

func groupersToken(ids []int) string {
	if len(ids) == 0 {
		return AllToken
	}

	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, grouperSeparator)
}

func paymentToken(method string) string {
	method = strings.TrimSpace(method)
	if method == "" {
		return AllToken
	}
	return method
}
