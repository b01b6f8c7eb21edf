package model

// ItemStatus is the overall outcome of evaluating one item.
type ItemStatus string

const (
	StatusValid            ItemStatus = "valid"
	StatusInexequibleFlag  ItemStatus = "inexequible_flag"
	StatusExcessiveFlag    ItemStatus = "excessive_flag"
	StatusInsufficientData ItemStatus = "insufficient_data"
)

// ExclusionReason records why a quotation left the valid set.
type ExclusionReason string

const (
	ReasonInvalidPrice    ExclusionReason = "invalid_price"
	ReasonManualExclusion ExclusionReason = "manual_exclusion"
	ReasonInexequible     ExclusionReason = "inexequible"
	ReasonExcessive       ExclusionReason = "excessive"
)

// PriceMethod is the central-tendency measure that anchored the final
// suggested price.
type PriceMethod string

const (
	MethodMean   PriceMethod = "mean"
	MethodMedian PriceMethod = "median"
)

// ExcludedQuotation pairs a removed quotation with the reason and a
// human-readable note for the audit trail.
type ExcludedQuotation struct {
	Quotation Quotation       `json:"quotation"`
	Reason    ExclusionReason `json:"reason"`
	Note      string          `json:"note,omitempty"`
}

// ItemResult is the derived evaluation of one item. It is always computed
// from the final valid set only; excluded quotations contribute nothing.
type ItemResult struct {
	ItemID         string      `json:"item_id"`
	ValidCount     int         `json:"valid_count"`
	Mean           float64     `json:"mean"`
	Median         float64     `json:"median"`
	StdDev         float64     `json:"std_dev"`
	CV             float64     `json:"cv"` // ratio, not percentage
	Method         PriceMethod `json:"method,omitempty"`
	SuggestedPrice float64     `json:"suggested_price"`
	SuggestedTotal float64     `json:"suggested_total"` // quantity x suggested price
	Status         ItemStatus  `json:"status"`
	Iterations     int         `json:"iterations"`
	// BestPrice is the lowest-priced quotation of the final valid set,
	// used by the comparative-map consolidation.
	BestPrice *Quotation          `json:"best_price,omitempty"`
	Excluded  []ExcludedQuotation `json:"excluded,omitempty"`
	Warnings  []string            `json:"warnings,omitempty"`
}

// ConsolidatedReport aggregates the item results of a session in item
// order. It is derived on demand and never stored.
type ConsolidatedReport struct {
	SessionID     string       `json:"session_id"`
	ProcessNumber string       `json:"process_number,omitempty"`
	Type          AnalysisType `json:"type"`

	// TotalMarketValue sums quantity x suggested price over items that
	// produced a defensible estimate (status != insufficient_data).
	TotalMarketValue float64 `json:"total_market_value"`
	// TotalContractedValue sums quantity x contracted unit value over the
	// same items; meaningful for contract-extension analyses.
	TotalContractedValue float64 `json:"total_contracted_value,omitempty"`
	// TotalBestPriceValue sums quantity x best valid price over the same
	// items; meaningful for comparative-map analyses.
	TotalBestPriceValue float64 `json:"total_best_price_value,omitempty"`

	StatusCounts map[ItemStatus]int `json:"status_counts"`
	Results      []ItemResult       `json:"results"`
}
