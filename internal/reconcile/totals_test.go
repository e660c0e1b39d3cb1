package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/reconcile"
)

func TestAggregator_Apply(t *testing.T) {
	agg := reconcile.Aggregator{StandardRate: dec(t, "0.1")}

	t.Run("sums_lines_and_adjustments", func(t *testing.T) {
		run := reconcile.NewRun()
		inv := domain.Invoice{
			ShippingCost:  dec(t, "10"),
			PickingCharge: dec(t, "5"),
			LineItems: []domain.LineItem{
				{LineTotalExcl: dec(t, "100"), LineTotalTax: dec(t, "10")},
				{LineTotalExcl: dec(t, "50"), LineTotalTax: dec(t, "0")},
			},
		}
		out := agg.Apply(run, inv)
		// excl = 150 + 15 = 165; tax = 10 + 15*0.1 = 11.5
		assertDec(t, "165", out.TotalExclTax)
		assertDec(t, "11.5", out.TotalTax)
		assertDec(t, "176.5", out.TotalAmount)
	})

	t.Run("variance_is_published_minus_computed", func(t *testing.T) {
		run := reconcile.NewRun()
		inv := domain.Invoice{
			SubtotalExclTax: dec(t, "100"),
			GSTTotal:        dec(t, "10"),
			TotalInclTax:    dec(t, "110"),
			LineItems: []domain.LineItem{
				{LineTotalExcl: dec(t, "99"), LineTotalTax: dec(t, "9.9")},
			},
		}
		out := agg.Apply(run, inv)
		assertDec(t, "1", out.SubtotalVariance)
		assertDec(t, "0.1", out.GSTVariance)
		assertDec(t, "1.1", out.TotalVariance)
	})

	t.Run("nonzero_total_variance_emits_warning", func(t *testing.T) {
		run := reconcile.NewRun()
		inv := domain.Invoice{
			TotalInclTax: dec(t, "100"),
			LineItems: []domain.LineItem{
				{LineTotalExcl: dec(t, "50"), LineTotalTax: dec(t, "5")},
			},
		}
		agg.Apply(run, inv)
		events := run.Events()
		require.Len(t, events, 1)
		assert.Equal(t, reconcile.LevelWarn, events[0].Level)
	})

	t.Run("exact_match_stays_quiet", func(t *testing.T) {
		run := reconcile.NewRun()
		inv := domain.Invoice{
			SubtotalExclTax: dec(t, "100"),
			GSTTotal:        dec(t, "10"),
			TotalInclTax:    dec(t, "110"),
			LineItems: []domain.LineItem{
				{LineTotalExcl: dec(t, "100"), LineTotalTax: dec(t, "10")},
			},
		}
		out := agg.Apply(run, inv)
		assertDec(t, "0", out.TotalVariance)
		assert.Empty(t, run.Events())
	})

	t.Run("published_totals_untouched", func(t *testing.T) {
		run := reconcile.NewRun()
		inv := domain.Invoice{
			SubtotalExclTax: dec(t, "123.45"),
			GSTTotal:        dec(t, "12.34"),
			TotalInclTax:    dec(t, "135.79"),
		}
		out := agg.Apply(run, inv)
		assertDec(t, "123.45", out.SubtotalExclTax)
		assertDec(t, "12.34", out.GSTTotal)
		assertDec(t, "135.79", out.TotalInclTax)
	})
}

func TestRun_Events(t *testing.T) {
	run := reconcile.NewRun()
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", run.ID.String())

	run.Infof("stage_a", "first %d", 1)
	run.Warnf("stage_b", "second")
	run.Errorf("stage_c", "third")

	events := run.Events()
	require.Len(t, events, 3)
	assert.Equal(t, reconcile.Event{Stage: "stage_a", Level: reconcile.LevelInfo, Message: "first 1"}, events[0])
	assert.Equal(t, reconcile.LevelWarn, events[1].Level)
	assert.Equal(t, reconcile.LevelError, events[2].Level)
}
