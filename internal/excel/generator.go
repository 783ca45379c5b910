package excel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/moto-rental/internal/model"
)

const summarySheet = "Summary"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a summary sheet plus one sheet per model year.
func (g *Generator) Generate(report model.FleetReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	groups := groupByYear(report.Motos)
	g.writeSummary(file, report, groups)

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range groups {
		sheetName := buildSheetName(group.year, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		g.writeDetail(file, sheetName, group)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type yearGroup struct {
	year  int
	motos []model.Moto
}

func (g *Generator) writeSummary(file *excelize.File, report model.FleetReport, groups []yearGroup) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Moto fleet")
	set("A2", "Generated at")
	set("B2", formatDateTime(report.GeneratedAt))
	set("A3", "Plate filter")
	set("B3", formatFilter(report.PlateFilter))
	set("A4", "Total motos")
	set("B4", len(report.Motos))

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "Year")
	set(fmt.Sprintf("B%d", tableRow), "Motos")
	for i, group := range groups {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), group.year)
		set(fmt.Sprintf("B%d", row), len(group.motos))
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 20)
	_ = file.SetColWidth(summarySheet, "B", "B", 24)
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, group yearGroup) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"ID", "Plate", "Model", "Year", "Registered at"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, moto := range group.motos {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), moto.ID.String())
		set(fmt.Sprintf("B%d", row), moto.Plate)
		set(fmt.Sprintf("C%d", row), moto.Model)
		set(fmt.Sprintf("D%d", row), moto.Year)
		set(fmt.Sprintf("E%d", row), formatDateTime(moto.CreatedAt))
	}

	_ = file.SetColWidth(sheet, "A", "A", 38)
	_ = file.SetColWidth(sheet, "B", "B", 12)
	_ = file.SetColWidth(sheet, "C", "C", 32)
	_ = file.SetColWidth(sheet, "D", "D", 8)
	_ = file.SetColWidth(sheet, "E", "E", 20)
}

// groupByYear returns groups ordered by descending year, motos ordered by plate.
func groupByYear(motos []model.Moto) []yearGroup {
	index := make(map[int]int)
	groups := make([]yearGroup, 0)
	for _, moto := range motos {
		pos, ok := index[moto.Year]
		if !ok {
			groups = append(groups, yearGroup{year: moto.Year})
			pos = len(groups) - 1
			index[moto.Year] = pos
		}
		groups[pos].motos = append(groups[pos].motos, moto)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].year > groups[j].year })
	for _, group := range groups {
		sort.Slice(group.motos, func(i, j int) bool { return group.motos[i].Plate < group.motos[j].Plate })
	}
	return groups
}

func buildSheetName(year int, used map[string]struct{}) string {
	base := fmt.Sprintf("Year %d", year)
	candidate := base
	for counter := 2; ; counter++ {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func formatFilter(plate string) string {
	if strings.TrimSpace(plate) == "" {
		return "all"
	}
	return plate
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
