package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/moto-rental/internal/model"
)

func TestGenerateFleetReport(t *testing.T) {
	created := time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)
	report := model.FleetReport{
		PlateFilter: "ABC",
		GeneratedAt: created,
		Motos: []model.Moto{
			{ID: uuid.New(), Year: 2023, Model: "Honda CG", Plate: "ABC2222", CreatedAt: created},
			{ID: uuid.New(), Year: 2024, Model: "Mottu Sport", Plate: "ABC9999", CreatedAt: created},
			{ID: uuid.New(), Year: 2024, Model: "Mottu Sport", Plate: "ABC1111", CreatedAt: created},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	require.Equal(t, []string{"Summary", "Year 2024", "Year 2023"}, file.GetSheetList())

	total, err := file.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	require.Equal(t, "3", total)

	filter, err := file.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	require.Equal(t, "ABC", filter)

	first, err := file.GetCellValue("Year 2024", "B2")
	require.NoError(t, err)
	require.Equal(t, "ABC1111", first)

	registered, err := file.GetCellValue("Year 2024", "E2")
	require.NoError(t, err)
	require.Equal(t, "2024-05-01 09:30:00", registered)
}

func TestGenerateEmptyFleet(t *testing.T) {
	content, err := NewGenerator().Generate(model.FleetReport{GeneratedAt: time.Now()})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	require.Equal(t, []string{"Summary"}, file.GetSheetList())
	filter, err := file.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	require.Equal(t, "all", filter)
}
