package report

import (
	"fmt"

	"agritrack/backend/internal/records"
)

// Report kinds accepted by Build. Each corresponds to one fixed paper
// template.
const (
	KindRice       = "rice"
	KindLivestock  = "livestock"
	KindOperators  = "operators"
	KindHighValue  = "highvalue"
	KindVegetables = "vegetables"
)

// Fixed data-row counts per template. Sheets are padded to these regardless
// of how much real data exists.
const (
	riceFixedRows      = 30
	livestockFixedRows = 25
	operatorFixedRows  = 30
	profileFixedRows   = 35
)

// Kinds lists the supported report kinds.
func Kinds() []string {
	return []string{KindRice, KindLivestock, KindOperators, KindHighValue, KindVegetables}
}

// Build constructs the report document for one kind over a record snapshot.
// Unlike the dashboard path, layout failures surface to the caller: a
// malformed printed report is worse than no report.
func Build(kind string, data records.Dataset, f Filters, meta Meta) (*Document, error) {
	switch kind {
	case KindRice:
		return buildRiceReport(data.Rice, f, meta), nil
	case KindLivestock:
		return buildLivestockReport(data.Livestock, f, meta), nil
	case KindOperators:
		return buildOperatorReport(data.Operators, f, meta), nil
	case KindHighValue:
		return buildHighValueReport(data.HighValueCrops, f, meta), nil
	case KindVegetables:
		return buildVegetableReport(data.Crops, f, meta), nil
	default:
		return nil, fmt.Errorf("unknown report kind: %q", kind)
	}
}
