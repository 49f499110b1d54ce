package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nvelez/slate/internal/schedule"
)

// Column letters printed under the time headers, one per catalog slot.
var slotLetters = []string{"A", "B", "C", "D", "E", "G", "H", "I", "J", "K", "L", "M", "N", "O", "SAT", "ASYNCH"}

const (
	sheetTitlePrefix = "DELAPLAINE SCHOOL OF BUSINESS"

	// First slot column; columns 1 and 2 are left blank for print margins.
	firstSlotCol = 3
)

// WriteGrid writes the schedule as an Excel grid: one column per slot,
// courses stacked within their column, day groups tinted.
func WriteGrid(w io.Writer, term schedule.Term, courses []*schedule.Course) error {
	slots := schedule.Slots()
	lastCol := firstSlotCol + len(slots) - 1

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := termTitle(term) + " Schedule"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	letterStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#BFBFBF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorder(),
	})
	mwStyle, _ := f.NewStyle(cellStyle("#D9E1F2"))
	trStyle, _ := f.NewStyle(cellStyle("#FDE9D9"))
	eveStyle, _ := f.NewStyle(cellStyle("#FFF2CC"))

	// Title row spans the full grid.
	title := fmt.Sprintf("%s - %s Schedule", sheetTitlePrefix, termTitle(term))
	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.MergeCell(sheet, "A1", cellName(lastCol, 1))
	_ = f.SetCellStyle(sheet, "A1", cellName(lastCol, 1), titleStyle)

	// Row 2 carries the meeting times, row 3 the slot letters.
	for i, slot := range slots {
		col := firstSlotCol + i
		_ = f.SetCellValue(sheet, cellName(col, 2), slot.Label)
		_ = f.SetCellValue(sheet, cellName(col, 3), slotLetters[i])
	}
	_ = f.SetCellStyle(sheet, "A2", cellName(lastCol, 2), headerStyle)
	_ = f.SetCellStyle(sheet, "A3", cellName(lastCol, 3), letterStyle)

	// Stack scheduled courses under their slot column.
	grid := make(map[int][]string)
	maxRows := 1
	for _, c := range courses {
		i := schedule.SlotIndex(c.SlotID)
		if c.SlotID == "" || i < 0 {
			continue
		}
		col := firstSlotCol + i
		grid[col] = append(grid[col], fmt.Sprintf("%s %s\n%s", c.Code, c.Number, c.Instructor))
		if len(grid[col]) > maxRows {
			maxRows = len(grid[col])
		}
	}

	for rowOffset := 0; rowOffset < maxRows; rowOffset++ {
		row := 4 + rowOffset
		for col := firstSlotCol; col <= lastCol; col++ {
			style := eveStyle
			switch {
			case col <= firstSlotCol+4:
				style = mwStyle
			case col <= firstSlotCol+9:
				style = trStyle
			}
			_ = f.SetCellStyle(sheet, cellName(col, row), cellName(col, row), style)
			if stack := grid[col]; rowOffset < len(stack) {
				_ = f.SetCellValue(sheet, cellName(col, row), stack[rowOffset])
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(lastCol)
	_ = f.SetColWidth(sheet, "A", last, 15)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func termTitle(term schedule.Term) string {
	s := string(term)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return borders
}

func cellStyle(fill string) *excelize.Style {
	return &excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}
}
