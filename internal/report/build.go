// Package report assembles the consolidated weekly report.
//
// The report is the union of the platform ledger sheets, enriched with
// display names from the product master. Rows whose business code has
// no master entry are collected separately so the catalog team can fix
// the master.
package report

import (
	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Build concatenates the given platforms' sheets into one table with a
// unioned column set. Empty sheets are skipped. A sheet without a
// playground column gets one stamped with its platform name.
func Build(platforms []string, sheets map[string]*table.Table) *table.Table {
	out := table.New()
	for _, platform := range platforms {
		tbl := sheets[platform]
		if tbl == nil || tbl.IsEmpty() {
			continue
		}
		if !tbl.HasColumn(canonical.ColPlayground) {
			tbl = tbl.Clone()
			tbl.SetColumn(canonical.ColPlayground, table.String(platform))
		}
		out.AppendTable(tbl)
	}
	return out
}
