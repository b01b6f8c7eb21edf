// Package session manages the lifecycle of one analysis session: item and
// quotation mutations, threshold updates and memoized evaluation.
package session

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/licita-tools/pesquisa-cli/internal/engine"
	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/unit"
)

// cached pairs an item result with the session revision it was computed
// at. A result is fresh while the item has not changed since.
type cached struct {
	rev    uint64
	result model.ItemResult
}

// Manager wraps an AnalysisSession with a monotonically increasing
// revision counter. Every mutation bumps the revision and stamps the
// touched item, so Consolidate recomputes only stale items.
type Manager struct {
	sess     *model.AnalysisSession
	revision uint64
	itemRev  map[string]uint64
	cache    map[string]cached
}

// New creates a manager for a fresh session.
func New(t model.AnalysisType, mode model.LaunchMode, processNumber string, cfg model.AnalysisConfig) (*Manager, error) {
	if !t.Valid() {
		return nil, eris.Errorf("session: unknown analysis type %q", t)
	}
	if !mode.Valid() {
		return nil, eris.Errorf("session: unknown launch mode %q", mode)
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "session: new")
	}

	now := time.Now().UTC()
	return &Manager{
		sess: &model.AnalysisSession{
			ID:            uuid.New().String(),
			ProcessNumber: processNumber,
			Type:          t,
			Mode:          mode,
			Config:        cfg,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		itemRev: make(map[string]uint64),
		cache:   make(map[string]cached),
	}, nil
}

// Restore wraps a session loaded from a snapshot. All items start stale,
// so the first consolidation re-evaluates everything deterministically.
func Restore(sess *model.AnalysisSession) (*Manager, error) {
	if sess == nil {
		return nil, eris.New("session: restore nil session")
	}
	if !sess.Type.Valid() {
		return nil, eris.Errorf("session: unknown analysis type %q", sess.Type)
	}
	if err := sess.Config.Validate(); err != nil {
		return nil, eris.Wrap(err, "session: restore")
	}

	m := &Manager{
		sess:    sess,
		itemRev: make(map[string]uint64),
		cache:   make(map[string]cached),
	}
	for i := range sess.Items {
		m.itemRev[sess.Items[i].ID] = 0
	}
	return m, nil
}

// Session exposes the underlying session for snapshot persistence.
func (m *Manager) Session() *model.AnalysisSession {
	return m.sess
}

// Config returns the active thresholds.
func (m *Manager) Config() model.AnalysisConfig {
	return m.sess.Config
}

func (m *Manager) touch(itemID string) {
	m.revision++
	m.itemRev[itemID] = m.revision
	m.sess.UpdatedAt = time.Now().UTC()
}

// AddItem appends an item. The unit of measure is canonicalized against
// the institutional list when recognized; unrecognized units are kept as
// entered.
func (m *Manager) AddItem(description, unitOfMeasure string, quantity, referenceValue, contractedValue float64) (*model.Item, error) {
	if description == "" {
		return nil, eris.New("session: item description is required")
	}
	if quantity < 0 {
		return nil, eris.Errorf("session: quantity must be >= 0 (got %g)", quantity)
	}
	if canon := unit.Normalize(unitOfMeasure); canon != "" {
		unitOfMeasure = canon
	}

	it := model.Item{
		ID:              uuid.New().String(),
		Description:     description,
		Unit:            unitOfMeasure,
		Quantity:        quantity,
		ReferenceValue:  referenceValue,
		ContractedValue: contractedValue,
	}
	m.sess.Items = append(m.sess.Items, it)
	m.touch(it.ID)
	return &m.sess.Items[len(m.sess.Items)-1], nil
}

// RemoveItem deletes an item and drops its cached result.
func (m *Manager) RemoveItem(itemID string) error {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return eris.Errorf("session: item %s not found", itemID)
	}
	m.sess.Items = append(m.sess.Items[:idx], m.sess.Items[idx+1:]...)
	delete(m.itemRev, itemID)
	delete(m.cache, itemID)
	m.revision++
	m.sess.UpdatedAt = time.Now().UTC()
	return nil
}

// MoveItem shifts an item up or down in report order. Reordering does not
// invalidate results; evaluation is order-independent.
func (m *Manager) MoveItem(itemID string, delta int) error {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return eris.Errorf("session: item %s not found", itemID)
	}
	to := idx + delta
	if to < 0 || to >= len(m.sess.Items) {
		return eris.Errorf("session: cannot move item %s by %d", itemID, delta)
	}
	m.sess.Items[idx], m.sess.Items[to] = m.sess.Items[to], m.sess.Items[idx]
	m.sess.UpdatedAt = time.Now().UTC()
	return nil
}

// DuplicateItem appends a copy of an item with fresh identities.
func (m *Manager) DuplicateItem(itemID string) (*model.Item, error) {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return nil, eris.Errorf("session: item %s not found", itemID)
	}

	src := m.sess.Items[idx]
	dup := src
	dup.ID = uuid.New().String()
	dup.Quotations = make([]model.Quotation, len(src.Quotations))
	for i, q := range src.Quotations {
		q.ID = uuid.New().String()
		dup.Quotations[i] = q
	}
	m.sess.Items = append(m.sess.Items, dup)
	m.touch(dup.ID)
	return &m.sess.Items[len(m.sess.Items)-1], nil
}

// AddQuotation appends a quotation to an item. The price must be a
// positive finite number; anything else is rejected with ErrInvalidPrice
// before construction.
func (m *Manager) AddQuotation(itemID string, q model.Quotation) (*model.Quotation, error) {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return nil, eris.Errorf("session: item %s not found", itemID)
	}
	if err := validPrice(q.Price); err != nil {
		return nil, err
	}
	if q.Source == "" {
		return nil, eris.New("session: quotation source is required")
	}
	if q.SourceType == "" {
		q.SourceType = model.SourceSupplier
	}
	q.ID = uuid.New().String()

	it := &m.sess.Items[idx]
	it.Quotations = append(it.Quotations, q)
	m.touch(itemID)

	zap.L().Debug("session: quotation added",
		zap.String("item_id", itemID),
		zap.String("source", q.Source),
		zap.Float64("price", q.Price),
	)
	return &it.Quotations[len(it.Quotations)-1], nil
}

// RemoveQuotation deletes a quotation from an item.
func (m *Manager) RemoveQuotation(itemID, quotationID string) error {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return eris.Errorf("session: item %s not found", itemID)
	}
	it := &m.sess.Items[idx]
	for i := range it.Quotations {
		if it.Quotations[i].ID == quotationID {
			it.Quotations = append(it.Quotations[:i], it.Quotations[i+1:]...)
			m.touch(itemID)
			return nil
		}
	}
	return eris.Errorf("session: quotation %s not found on item %s", quotationID, itemID)
}

// ExcludeQuotation replaces a quotation with a manually excluded copy.
// Quotation values stay immutable; the override is a new value.
func (m *Manager) ExcludeQuotation(itemID, quotationID, justification string) error {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return eris.Errorf("session: item %s not found", itemID)
	}
	it := &m.sess.Items[idx]
	for i := range it.Quotations {
		if it.Quotations[i].ID == quotationID {
			q := it.Quotations[i]
			q.ManualExclude = true
			q.Justification = justification
			it.Quotations[i] = q
			m.touch(itemID)
			return nil
		}
	}
	return eris.Errorf("session: quotation %s not found on item %s", quotationID, itemID)
}

// UpdateConfig replaces the thresholds all-or-nothing. A validation
// failure leaves the previous configuration and every cached result
// untouched; success invalidates all cached results.
func (m *Manager) UpdateConfig(cfg model.AnalysisConfig) error {
	if err := cfg.Validate(); err != nil {
		return eris.Wrap(err, "session: update config")
	}
	m.sess.Config = cfg
	m.revision++
	for id := range m.itemRev {
		m.itemRev[id] = m.revision
	}
	m.sess.UpdatedAt = time.Now().UTC()

	zap.L().Info("session: configuration updated",
		zap.String("session_id", m.sess.ID),
		zap.Float64("cv_high_threshold", cfg.CVHighThreshold),
		zap.Float64("low_price_ratio", cfg.LowPriceRatio),
		zap.Float64("high_price_ratio", cfg.HighPriceRatio),
		zap.Int("min_valid_quotations", cfg.MinValidQuotations),
	)
	return nil
}

// EvaluateItem returns the item's result, recomputing only when the item
// changed since the cached evaluation.
func (m *Manager) EvaluateItem(itemID string) (model.ItemResult, error) {
	idx := m.sess.FindItem(itemID)
	if idx < 0 {
		return model.ItemResult{}, eris.Errorf("session: item %s not found", itemID)
	}

	rev := m.itemRev[itemID]
	if c, ok := m.cache[itemID]; ok && c.rev == rev {
		return c.result, nil
	}

	ev, err := engine.New(m.sess.Config)
	if err != nil {
		return model.ItemResult{}, err
	}
	res := ev.EvaluateItem(&m.sess.Items[idx])
	m.cache[itemID] = cached{rev: rev, result: res}
	return res, nil
}

// Consolidate evaluates every item (memoized) and aggregates the session
// totals in item order.
func (m *Manager) Consolidate() (*model.ConsolidatedReport, error) {
	rep := &model.ConsolidatedReport{
		SessionID:     m.sess.ID,
		ProcessNumber: m.sess.ProcessNumber,
		Type:          m.sess.Type,
		StatusCounts:  make(map[model.ItemStatus]int),
	}

	for i := range m.sess.Items {
		it := &m.sess.Items[i]
		res, err := m.EvaluateItem(it.ID)
		if err != nil {
			return nil, eris.Wrapf(err, "session: consolidate item %s", it.ID)
		}

		rep.StatusCounts[res.Status]++
		rep.Results = append(rep.Results, res)

		if res.Status == model.StatusInsufficientData {
			continue
		}
		rep.TotalMarketValue += res.SuggestedTotal
		if it.ContractedValue > 0 {
			rep.TotalContractedValue += it.Quantity * it.ContractedValue
		}
		if res.BestPrice != nil {
			rep.TotalBestPriceValue += it.Quantity * res.BestPrice.Price
		}
	}

	zap.L().Info("session: consolidated",
		zap.String("session_id", m.sess.ID),
		zap.Int("items", len(rep.Results)),
		zap.Float64("total_market_value", rep.TotalMarketValue),
	)
	return rep, nil
}

func validPrice(p float64) error {
	if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return eris.Wrapf(model.ErrInvalidPrice, "price %v must be a positive number", p)
	}
	return nil
}
