package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raeesul-erabiz/invoice-extractor/internal/coerce"
	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/reconcile"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(t, want)), "got %s want %s", got, want)
}

func TestReconcileItem(t *testing.T) {
	run := reconcile.NewRun()

	t.Run("percent_tax_applied_to_excl", func(t *testing.T) {
		raw := domain.RawLineItem{
			ProductName:   coerce.NewString("FLOUR 6X1KG"),
			OrderQuantity: coerce.NewNumber("2"),
			LineTotalExcl: coerce.NewNumber("100"),
			LineTotalTax:  coerce.NewString("10%"),
		}
		item, err := reconcile.ReconcileItem(run, "some supplier", 0, raw)
		require.NoError(t, err)
		// tax = 100 * 10% = 10, incl = 110
		assertDec(t, "10", item.LineTotalTax)
		assertDec(t, "100", item.LineTotalExcl)
		assertDec(t, "110", item.LineTotalIncl)
		assertDec(t, "50", item.OrderUnitPriceExcl)
		assertDec(t, "5", item.OrderUnitTax)
		assertDec(t, "55", item.OrderUnitPriceIncl)
		assert.Equal(t, domain.GSTApplied, item.GSTIndicator)
	})

	t.Run("currency_tax_is_literal_amount", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("1"),
			LineTotalExcl: coerce.NewNumber("50"),
			LineTotalTax:  coerce.NewString("$5.00"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assertDec(t, "5", item.LineTotalTax)
		assertDec(t, "55", item.LineTotalIncl)
	})

	t.Run("decimal_tax_is_literal_amount", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("1"),
			LineTotalExcl: coerce.NewNumber("50"),
			LineTotalTax:  coerce.NewNumber("2.5"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assertDec(t, "2.5", item.LineTotalTax)
	})

	t.Run("whole_number_tax_is_a_rate", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("1"),
			LineTotalExcl: coerce.NewNumber("200"),
			LineTotalTax:  coerce.NewNumber("10"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		// 200 * 10 / 100 = 20
		assertDec(t, "20", item.LineTotalTax)
	})

	t.Run("missing_tax_falls_back_to_incl_minus_excl", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("1"),
			LineTotalExcl: coerce.NewNumber("100"),
			LineTotalIncl: coerce.NewNumber("110"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assertDec(t, "10", item.LineTotalTax)
		assertDec(t, "110", item.LineTotalIncl)
	})

	t.Run("tax_exempt_incl_passthrough", func(t *testing.T) {
		// only incl present, no tax: excl mirrors incl
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("1"),
			LineTotalIncl: coerce.NewNumber("110"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assertDec(t, "110", item.LineTotalExcl)
		assertDec(t, "110", item.LineTotalIncl)
		assertDec(t, "0", item.LineTotalTax)
		assert.Equal(t, domain.GSTFree, item.GSTIndicator)
	})

	t.Run("excl_authoritative_when_both_present", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("1"),
			LineTotalExcl: coerce.NewNumber("100"),
			LineTotalIncl: coerce.NewNumber("999"),
			LineTotalTax:  coerce.NewString("10%"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		// incl rebuilt from excl + tax, the extractor's incl is discarded
		assertDec(t, "110", item.LineTotalIncl)
	})

	t.Run("quantity_defaults_to_one", func(t *testing.T) {
		raw := domain.RawLineItem{
			LineTotalExcl: coerce.NewNumber("42"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assertDec(t, "1", item.OrderQuantity)
		assertDec(t, "42", item.OrderUnitPriceExcl)
	})

	t.Run("zero_quantity_zeroes_unit_fields", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("0"),
			LineTotalExcl: coerce.NewNumber("42"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assertDec(t, "0", item.OrderUnitPriceExcl)
		assertDec(t, "0", item.OrderUnitTax)
		assertDec(t, "0", item.OrderUnitPriceIncl)
	})

	t.Run("pnm_quantity_reinterpreted", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("2"),
			LineTotalExcl: coerce.NewNumber("153"),
			PriceQuantity: coerce.NewString("$76.50 / 6"),
		}
		item, err := reconcile.ReconcileItem(run, domain.SupplierPNMSydney, 0, raw)
		require.NoError(t, err)
		// qty = 2 * 12.75 / 153 = 0.1666...; other suppliers keep qty as-is
		want := dec(t, "2").Mul(dec(t, "12.75")).Div(dec(t, "153"))
		assert.True(t, item.OrderQuantity.Equal(want))
	})

	t.Run("pnm_reinterpretation_skipped_for_other_suppliers", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("2"),
			LineTotalExcl: coerce.NewNumber("153"),
			PriceQuantity: coerce.NewString("$76.50 / 6"),
		}
		item, err := reconcile.ReconcileItem(run, "someone else", 0, raw)
		require.NoError(t, err)
		assertDec(t, "2", item.OrderQuantity)
	})

	t.Run("incl_equals_excl_plus_tax", func(t *testing.T) {
		raw := domain.RawLineItem{
			OrderQuantity: coerce.NewNumber("3"),
			LineTotalExcl: coerce.NewNumber("99.99"),
			LineTotalTax:  coerce.NewString("10%"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assert.True(t, item.LineTotalIncl.Equal(item.LineTotalExcl.Add(item.LineTotalTax)))
	})

	t.Run("name_cleanup_and_defaults", func(t *testing.T) {
		raw := domain.RawLineItem{
			ProductName:   coerce.NewString("  SPARKLING\nWATER   12X330ML "),
			LineTotalExcl: coerce.NewNumber("10"),
		}
		item, err := reconcile.ReconcileItem(run, "s", 0, raw)
		require.NoError(t, err)
		assert.Equal(t, "SPARKLING WATER 12X330ML", item.ProductName)
		assert.Equal(t, domain.DefaultOrderUnit, item.OrderUnit)
	})
}

func TestApplyFlatTax(t *testing.T) {
	item := domain.LineItem{
		OrderQuantity: dec(t, "2"),
		LineTotalExcl: dec(t, "100"),
	}
	reconcile.ApplyFlatTax(&item, dec(t, "0.1"))

	assertDec(t, "10", item.LineTotalTax)
	assertDec(t, "110", item.LineTotalIncl)
	assertDec(t, "50", item.OrderUnitPriceExcl)
	assertDec(t, "5", item.OrderUnitTax)
	assertDec(t, "55", item.OrderUnitPriceIncl)
	assert.Equal(t, domain.GSTApplied, item.GSTIndicator)

	t.Run("zero_rate_marks_gst_free", func(t *testing.T) {
		item := domain.LineItem{
			OrderQuantity: dec(t, "2"),
			LineTotalExcl: dec(t, "100"),
			GSTIndicator:  domain.GSTApplied,
		}
		reconcile.ApplyFlatTax(&item, decimal.Zero)
		assertDec(t, "0", item.LineTotalTax)
		assert.Equal(t, domain.GSTFree, item.GSTIndicator)
	})
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "A B C", reconcile.CleanName("  A \n B \t C  "))
	assert.Equal(t, "", reconcile.CleanName("   "))
}
