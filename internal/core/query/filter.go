package query

// Filter is a partial query used for bulk invalidation.
// Nil fields are wildcards; a present field must match the key token exactly.
type Filter struct {
	PeriodID      *string
	EstudioID     *int
	GrouperIDs    []int
	PaymentMethod *string
}

// ForPeriod matches every entry of a period regardless of its other scopes
func ForPeriod(periodID string) Filter {
	return Filter{PeriodID: &periodID}
}

// ForEstudio matches every entry of an estudio regardless of its other scopes
func ForEstudio(estudioID int) Filter {
	return Filter{EstudioID: &estudioID}
}

// WithEstudio narrows the filter to one estudio
func (f Filter) WithEstudio(estudioID int) Filter {
	f.EstudioID = &estudioID
	return f
}

// WithPaymentMethod narrows the filter to one payment method token
func (f Filter) WithPaymentMethod(method string) Filter {
	f.PaymentMethod = &method
	return f
}

// IsEmpty reports whether the filter matches everything
func (f Filter) IsEmpty() bool {
	return f.PeriodID == nil && f.EstudioID == nil && f.GrouperIDs == nil && f.PaymentMethod == nil
}

// Matches reports whether every present dimension equals the corresponding token
func (f Filter) Matches(t Tokens) bool {
	if f.PeriodID != nil && periodToken(*f.PeriodID) != t.Period {
		return false
	}
	if f.EstudioID != nil && estudioToken(f.EstudioID) != t.Estudio {
		return false
	}
	if f.GrouperIDs != nil && groupersToken(f.GrouperIDs) != t.Groupers {
		return false
	}
	if f.PaymentMethod != nil && paymentToken(*f.PaymentMethod) != t.Payment {
		return false
	}
	return true
}
