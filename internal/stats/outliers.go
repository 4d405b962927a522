package stats

import "lonnstall/internal/core"

const iqrMultiplier = 1.5

// PercentileBounds returns the values at floor(n*lowerPct) and
// floor(n*upperPct) of the sorted input. Indices past the end are clamped to
// the last element. Empty input yields zeros.
func PercentileBounds(values []float64, lowerPct, upperPct float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := sortedCopy(values)
	return sorted[percentileIndex(len(sorted), lowerPct)], sorted[percentileIndex(len(sorted), upperPct)]
}

func percentileIndex(n int, pct float64) int {
	i := int(float64(n) * pct)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// OutlierReport describes the IQR fences of a sample and the records outside them.
type OutlierReport struct {
	Q1       float64             `json:"q1"`
	Q3       float64             `json:"q3"`
	IQR      float64             `json:"iqr"`
	Lower    float64             `json:"lower"`
	Upper    float64             `json:"upper"`
	Outliers []core.SalaryRecord `json:"outliers"`
}

// DetectOutliers flags records whose selected value lies strictly outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Outliers keep their input order.
func DetectOutliers(records []core.SalaryRecord, sel Selector) OutlierReport {
	report := OutlierReport{Outliers: []core.SalaryRecord{}}
	if len(records) == 0 {
		return report
	}
	q1, q3 := PercentileBounds(Values(records, sel), 0.25, 0.75)
	iqr := q3 - q1
	report.Q1, report.Q3, report.IQR = q1, q3, iqr
	report.Lower = q1 - iqrMultiplier*iqr
	report.Upper = q3 + iqrMultiplier*iqr
	for _, r := range records {
		if v := sel(r); v < report.Lower || v > report.Upper {
			report.Outliers = append(report.Outliers, r)
		}
	}
	return report
}
