// Package export renders quizzes and study sheets to the delivery
// formats: machine-readable JSON, plain-text handouts with an answer
// key, printable HTML, and XLSX workbooks.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/quizcraft/backend/internal/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Extension returns the conventional file extension for a format.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// WriteQuiz renders the quiz in the requested format.
func WriteQuiz(w io.Writer, quiz *models.Quiz, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, quiz)
	case FormatText:
		return writeQuizText(w, quiz)
	case FormatHTML:
		return writeQuizHTML(w, quiz)
	case FormatXLSX:
		return writeQuizXLSX(w, quiz)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteStudySheet renders the study sheet in the requested format.
func WriteStudySheet(w io.Writer, sheet *models.StudySheet, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, sheet)
	case FormatText:
		return writeSheetText(w, sheet)
	case FormatHTML:
		return writeSheetHTML(w, sheet)
	case FormatXLSX:
		return writeSheetXLSX(w, sheet)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// itemView is a render-ready quiz item: the answer merged into the
// option list at a position derived from the item number, so the
// correct choice does not always sit at A.
type itemView struct {
	Number     int
	Question   string
	Type       models.QuestionType
	Difficulty models.Difficulty
	Answer     string
	Options    []string
	// AnswerLabel is the option letter for multiple choice, or the
	// answer text itself for the other types.
	AnswerLabel string
}

func quizViews(quiz *models.Quiz) []itemView {
	views := make([]itemView, 0, len(quiz.Items))
	for i, item := range quiz.Items {
		v := itemView{
			Number:      i + 1,
			Question:    item.Question,
			Type:        item.Type,
			Difficulty:  item.Difficulty,
			Answer:      item.Answer,
			AnswerLabel: item.Answer,
		}
		if item.Type == models.TypeMultipleChoice && len(item.Distractors) > 0 {
			pos := i % (len(item.Distractors) + 1)
			v.Options = append(v.Options, item.Distractors[:pos]...)
			v.Options = append(v.Options, item.Answer)
			v.Options = append(v.Options, item.Distractors[pos:]...)
			v.AnswerLabel = fmt.Sprintf("%c. %s", 'A'+pos, item.Answer)
		}
		views = append(views, v)
	}
	return views
}

func writeQuizText(w io.Writer, quiz *models.Quiz) error {
	var b strings.Builder
	b.WriteString("QUIZ\n====\n\n")

	views := quizViews(quiz)
	for _, v := range views {
		fmt.Fprintf(&b, "%d. %s\n", v.Number, v.Question)
		for oi, opt := range v.Options {
			fmt.Fprintf(&b, "   %c. %s\n", 'A'+oi, opt)
		}
		b.WriteByte('\n')
	}

	b.WriteString("ANSWER KEY\n==========\n\n")
	for _, v := range views {
		fmt.Fprintf(&b, "%d. %s\n", v.Number, v.AnswerLabel)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSheetText(w io.Writer, sheet *models.StudySheet) error {
	var b strings.Builder
	b.WriteString("STUDY SHEET\n===========\n\n")
	b.WriteString("Overview\n--------\n")
	b.WriteString(sheet.Overview)
	b.WriteString("\n\n")

	if len(sheet.KeyPoints) > 0 {
		b.WriteString("Key Points\n----------\n")
		for _, point := range sheet.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
		b.WriteByte('\n')
	}

	if len(sheet.Terms) > 0 {
		b.WriteString("Key Terms\n---------\n")
		for _, term := range sheet.Terms {
			fmt.Fprintf(&b, "%s: %s\n", term.Term, term.Context)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
