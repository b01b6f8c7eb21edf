package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

func TestScreen(t *testing.T) {
	quotations := []model.Quotation{
		{ID: "a", Source: "Empresa A", Price: 10},
		{ID: "b", Source: "Empresa B", Price: 0},
		{ID: "c", Source: "Empresa C", Price: -5},
		{ID: "d", Source: "Empresa D", Price: 12, ManualExclude: true, Justification: "quote expired"},
		{ID: "e", Source: "Empresa E", Price: math.NaN()},
		{ID: "f", Source: "Empresa F", Price: 11},
	}

	valid, excluded := Screen(quotations)

	require.Len(t, valid, 2)
	assert.Equal(t, "a", valid[0].ID)
	assert.Equal(t, "f", valid[1].ID)

	require.Len(t, excluded, 4)
	reasons := map[string]model.ExclusionReason{}
	for _, ex := range excluded {
		reasons[ex.Quotation.ID] = ex.Reason
	}
	assert.Equal(t, model.ReasonInvalidPrice, reasons["b"])
	assert.Equal(t, model.ReasonInvalidPrice, reasons["c"])
	assert.Equal(t, model.ReasonManualExclusion, reasons["d"])
	assert.Equal(t, model.ReasonInvalidPrice, reasons["e"])
}

func TestScreen_ManualExclusionNoteCarriesJustification(t *testing.T) {
	_, excluded := Screen([]model.Quotation{
		{ID: "a", Source: "X", Price: 10, ManualExclude: true, Justification: "wrong product"},
	})
	require.Len(t, excluded, 1)
	assert.Contains(t, excluded[0].Note, "wrong product")
}

func TestScreen_AllValid(t *testing.T) {
	valid, excluded := Screen([]model.Quotation{
		{ID: "a", Price: 1}, {ID: "b", Price: 2},
	})
	assert.Len(t, valid, 2)
	assert.Empty(t, excluded)
}
