package model

// AnalysisType selects which consolidated summary a session produces.
// The per-item evaluation pipeline is identical for all three.
type AnalysisType string

const (
	TypeStandardResearch  AnalysisType = "standard_research"
	TypeContractExtension AnalysisType = "contract_extension"
	TypeComparativeMap    AnalysisType = "comparative_map"
)

// Valid reports whether t is a known analysis type.
func (t AnalysisType) Valid() bool {
	switch t {
	case TypeStandardResearch, TypeContractExtension, TypeComparativeMap:
		return true
	}
	return false
}

// LaunchMode describes how quotations were entered. It affects data entry
// and import layout only; evaluation is agnostic to entry order.
type LaunchMode string

const (
	ModeItemByItem    LaunchMode = "item_by_item"
	ModeBatchBySource LaunchMode = "batch_by_source"
)

// Valid reports whether m is a known launch mode.
func (m LaunchMode) Valid() bool {
	return m == ModeItemByItem || m == ModeBatchBySource
}

// SourceType classifies where a quotation came from. Prices practiced by
// the public administration are exempt from the inexequible exclusion.
type SourceType string

const (
	SourceSupplier      SourceType = "supplier"
	SourceContract      SourceType = "contract"
	SourcePriceBank     SourceType = "price_bank"
	SourcePriceRegistry SourceType = "price_registry"
)

// Public reports whether the source is a public-administration price.
func (s SourceType) Public() bool {
	switch s {
	case SourceContract, SourcePriceBank, SourcePriceRegistry:
		return true
	}
	return false
}
