// Package report renders a dashboard as terminal text with pterm.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"lonnstall/internal/format"
	"lonnstall/internal/insights"
	"lonnstall/internal/services"
)

// Options controls how much of the dashboard is printed.
type Options struct {
	// TopFields limits the field growth table; zero prints every field.
	TopFields int
}

// Render writes d to w. Nothing is written to pterm's default output.
func Render(w io.Writer, d insights.Dashboard, info services.DatasetInfo, opts Options) error {
	var b strings.Builder

	b.WriteString(pterm.DefaultHeader.WithFullWidth().Sprint("Kode24 Lønnstall 2025"))
	b.WriteString("\n")
	if info.Records > 0 {
		fmt.Fprintf(&b, "%s oppføringer fra %s\n", format.Number(int64(info.Records)), info.Source)
	}

	if !d.HasData {
		b.WriteString(pterm.Warning.Sprintln("Ingen data å vise"))
		_, err := io.WriteString(w, b.String())
		return err
	}

	sections := []struct {
		title string
		build func() (string, error)
	}{
		{"Statistikk", func() (string, error) { return overviewTable(d) }},
		{"Kjønnsfordeling", func() (string, error) { return countsTable(d.Overview.Genders) }},
		{"Lønn etter erfaring", func() (string, error) { return bandChart(d) }},
		{"Lønnsforskjell mellom kjønn", func() (string, error) { return genderGapTable(d) }},
		{"Lønnsvekst per fagområde", func() (string, error) { return fieldGrowthTable(d, opts.TopFields) }},
		{"Karriereutvikling", func() (string, error) { return milestoneTable(d) }},
		{"For studenter og nyutdannede", func() (string, error) { return entryLevelTable(d) }},
	}
	for _, s := range sections {
		body, err := s.build()
		if err != nil {
			return fmt.Errorf("render %s: %w", s.title, err)
		}
		if body == "" {
			continue
		}
		b.WriteString(pterm.DefaultSection.Sprint(s.title))
		b.WriteString(body)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderTable(data pterm.TableData) (string, error) {
	if len(data) <= 1 {
		return "", nil
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

func overviewTable(d insights.Dashboard) (string, error) {
	s := d.Overview.Salary
	return renderTable(pterm.TableData{
		{"Respondenter", "Gjennomsnitt", "Median", "Laveste", "Høyeste"},
		{
			format.Number(int64(d.Overview.Respondents)),
			format.Kroner(s.Mean),
			format.Kroner(s.Median),
			format.Kroner(s.Min),
			format.Kroner(s.Max),
		},
	})
}

func countsTable(counts []insights.Count) (string, error) {
	data := pterm.TableData{{"", "Antall", "Andel"}}
	for _, c := range counts {
		data = append(data, []string{c.Label, format.Number(int64(c.Count)), strconv.Itoa(c.Percent) + " %"})
	}
	return renderTable(data)
}

// bandChart plots the mean salary per band in thousands of kroner.
func bandChart(d insights.Dashboard) (string, error) {
	if len(d.Bands) == 0 {
		return "", nil
	}
	bars := make(pterm.Bars, 0, len(d.Bands))
	for _, b := range d.Bands {
		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%s (%d)", b.Band.Label, b.Count),
			Value: int(b.Mean / 1000),
		})
	}
	chart, err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Srender()
	if err != nil {
		return "", err
	}
	return chart + "Verdier i tusen kroner\n", nil
}

func genderGapTable(d insights.Dashboard) (string, error) {
	data := pterm.TableData{{"Erfaring", "Menn", "Kvinner", "Forskjell"}}
	for _, g := range d.GenderPayGap {
		data = append(data, []string{
			g.Band.Label,
			fmt.Sprintf("%s (%d)", format.Kroner(g.MaleMean), g.MaleCount),
			fmt.Sprintf("%s (%d)", format.Kroner(g.FemaleMean), g.FemaleCount),
			format.Signed(g.Gap),
		})
	}
	return renderTable(data)
}

func fieldGrowthTable(d insights.Dashboard, limit int) (string, error) {
	rows := d.FieldGrowth
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	data := pterm.TableData{{"Fagområde", "Entry-level", "Erfaren (5+ år)", "Vekst"}}
	for _, f := range rows {
		data = append(data, []string{
			f.Field,
			format.Kroner(f.EntryMean),
			format.Kroner(f.SeniorMean),
			format.Signed(f.Growth),
		})
	}
	return renderTable(data)
}

func milestoneTable(d insights.Dashboard) (string, error) {
	data := pterm.TableData{{"Milepæl", "Snitt", "Spenn", "Antall"}}
	for _, m := range d.Milestones {
		if !m.HasData {
			data = append(data, []string{m.Title, "-", "-", "0"})
			continue
		}
		data = append(data, []string{
			m.Title,
			format.Kroner(m.Mean),
			format.Kroner(m.Min) + " - " + format.Kroner(m.Max),
			format.Number(int64(m.Count)),
		})
	}
	return renderTable(data)
}

func entryLevelTable(d insights.Dashboard) (string, error) {
	e := d.EntryLevel
	if !e.HasData {
		return pterm.Info.Sprintln("Ingen entry-level data for valgte filtre."), nil
	}
	data := pterm.TableData{
		{"Gruppe", "Snitt", "Antall"},
		{"Entry-level (0-2 år)", format.Kroner(e.EntryMean), format.Number(int64(e.EntryCount))},
	}
	if e.FreshGradCount > 0 {
		data = append(data, []string{"Nyutdannet (0 år)", format.Kroner(e.FreshGradMean), format.Number(int64(e.FreshGradCount))})
	}
	table, err := renderTable(data)
	if err != nil {
		return "", err
	}
	return table + fmt.Sprintf("Bonus eller provisjon: %d %%\n", e.VariablePayPercent), nil
}
