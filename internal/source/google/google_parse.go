package google

import (
	"fmt"
	"strconv"
	"strings"

	"lonnstall/internal/core"
)

var requiredHeaders = []string{
	"kjønn", "års utdanning", "års erfaring", "arbeidssted",
	"jobbtype", "fag", "lønn",
}

const (
	headerBonus      = "inkludert bonus?"
	headerCommission = "inkludert provisjon?"
)

// parseRecords converts a values matrix into records. The first row is the
// header; columns may come in any order. Rows that fail to parse or validate
// are skipped and counted.
func parseRecords(values [][]interface{}) ([]core.SalaryRecord, int, error) {
	if len(values) == 0 {
		return nil, 0, nil
	}
	headers := toStrings(values[0])
	col := make(map[string]int, len(headers))
	for i, h := range headers {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, h := range requiredHeaders {
		if _, ok := col[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("unexpected sheet header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok {
			return ""
		}
		return safeGet(row, i)
	}

	records := make([]core.SalaryRecord, 0, len(values)-1)
	skipped := 0
	for _, raw := range values[1:] {
		row := toStrings(raw)
		if isBlank(row) {
			continue
		}
		edu, err1 := strconv.Atoi(get(row, "års utdanning"))
		exp, err2 := strconv.Atoi(get(row, "års erfaring"))
		salary, err3 := strconv.ParseFloat(strings.ReplaceAll(get(row, "lønn"), " ", ""), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			skipped++
			continue
		}
		r := core.SalaryRecord{
			Gender:          get(row, "kjønn"),
			YearsEducation:  edu,
			YearsExperience: exp,
			Location:        get(row, "arbeidssted"),
			JobType:         get(row, "jobbtype"),
			Field:           get(row, "fag"),
			Salary:          salary,
			HasBonus:        parseBool(get(row, headerBonus)),
			HasCommission:   parseBool(get(row, headerCommission)),
		}
		if r.Validate() != nil {
			skipped++
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch n := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(n, 'f', -1, 64)
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx >= 0 && idx < len(arr) {
		return arr[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// parseBool accepts the spellings a spreadsheet tends to produce.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "ja", "yes", "1", "x":
		return true
	}
	return false
}
