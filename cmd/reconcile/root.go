package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile extracted supplier invoices into canonical JSON",
	Long: `reconcile takes the raw JSON emitted by the invoice extraction stage,
recomputes missing and inconsistent financial fields, applies supplier
specific corrections, and writes canonical invoice JSON.`,
	SilenceUsage: true,
}
