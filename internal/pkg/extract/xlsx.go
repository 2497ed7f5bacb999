package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxText renders the first sheet as CSV-ish lines, one row per line.
func xlsxText(path string) (string, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open xlsx failed: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("xlsx has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read xlsx rows failed: %w", err)
	}

	var out strings.Builder
	for _, row := range rows {
		out.WriteString(strings.Join(row, ","))
		out.WriteString("\n")
	}
	return out.String(), nil
}
