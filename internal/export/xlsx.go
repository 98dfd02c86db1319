package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quizcraft/backend/internal/models"
)

func writeQuizXLSX(w io.Writer, quiz *models.Quiz) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"#", "Question", "Type", "Difficulty", "Options", "Answer"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, v := range quizViews(quiz) {
		values := []any{
			v.Number,
			v.Question,
			string(v.Type),
			string(v.Difficulty),
			strings.Join(v.Options, "; "),
			v.AnswerLabel,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func writeSheetXLSX(w io.Writer, sheet *models.StudySheet) error {
	f := excelize.NewFile()
	defer f.Close()

	const name = "Sheet1"
	if err := f.SetCellValue(name, "A1", "Overview"); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "B1", sheet.Overview); err != nil {
		return err
	}

	row := 3
	if len(sheet.KeyPoints) > 0 {
		if err := f.SetCellValue(name, fmt.Sprintf("A%d", row), "Key Points"); err != nil {
			return err
		}
		for _, point := range sheet.KeyPoints {
			if err := f.SetCellValue(name, fmt.Sprintf("B%d", row), point); err != nil {
				return err
			}
			row++
		}
		row++
	}

	if len(sheet.Terms) > 0 {
		if err := f.SetCellValue(name, fmt.Sprintf("A%d", row), "Key Terms"); err != nil {
			return err
		}
		for _, term := range sheet.Terms {
			if err := f.SetCellValue(name, fmt.Sprintf("B%d", row), term.Term); err != nil {
				return err
			}
			if err := f.SetCellValue(name, fmt.Sprintf("C%d", row), term.Context); err != nil {
				return err
			}
			row++
		}
	}

	return f.Write(w)
}
