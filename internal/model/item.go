package model

import "github.com/rotisserie/eris"

// ErrInvalidPrice marks a malformed or non-positive price. Quotation
// constructors reject it before the engine ever sees the value.
var ErrInvalidPrice = eris.New("invalid quotation price")

// Quotation is a single researched price for an item. Immutable once
// created; automatic exclusions are recorded on the ItemResult, never by
// mutating the quotation.
type Quotation struct {
	ID            string     `json:"id"`
	Source        string     `json:"source"`
	SourceType    SourceType `json:"source_type"`
	Price         float64    `json:"price"`
	Locator       string     `json:"locator,omitempty"` // document reference (e.g. SEI locator)
	Note          string     `json:"note,omitempty"`
	ManualExclude bool       `json:"manual_exclude,omitempty"`
	Justification string     `json:"justification,omitempty"`
}

// Item is one line of the price research: a description, a unit of
// measure, an estimated quantity and its quotations in entry order.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	// ReferenceValue is an optional estimated unit value used for
	// contextual comparison only; it never drives exclusions.
	ReferenceValue float64 `json:"reference_value,omitempty"`
	// ContractedValue is the currently contracted unit value, set for
	// contract-extension analyses.
	ContractedValue float64     `json:"contracted_value,omitempty"`
	Quotations      []Quotation `json:"quotations"`
}

// PublicSourceShare returns the fraction of quotations that come from
// public-administration sources. Returns 0 for an item with no quotations.
func (it *Item) PublicSourceShare() float64 {
	if len(it.Quotations) == 0 {
		return 0
	}
	public := 0
	for _, q := range it.Quotations {
		if q.SourceType.Public() {
			public++
		}
	}
	return float64(public) / float64(len(it.Quotations))
}
