package export

import (
	"html/template"
	"io"

	"github.com/quizcraft/backend/internal/models"
)

var quizTemplate = template.Must(template.New("quiz").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Quiz</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; }
.question { margin-bottom: 1.5rem; }
.answer-key { page-break-before: always; }
ol.options { list-style-type: upper-alpha; }
</style>
</head>
<body>
<h1>Quiz</h1>
{{range .}}<div class="question">
<p>{{.Number}}. {{.Question}}</p>
{{if .Options}}<ol class="options">
{{range .Options}}<li>{{.}}</li>
{{end}}</ol>{{end}}
</div>
{{end}}<div class="answer-key">
<h2>Answer Key</h2>
<ol>
{{range .}}<li>{{.AnswerLabel}}</li>
{{end}}</ol>
</div>
</body>
</html>
`))

var sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Study Sheet</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; }
dt { font-weight: bold; }
dd { margin-bottom: 0.5rem; }
</style>
</head>
<body>
<h1>Study Sheet</h1>
<h2>Overview</h2>
<p>{{.Overview}}</p>
{{if .KeyPoints}}<h2>Key Points</h2>
<ul>
{{range .KeyPoints}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{if .Terms}}<h2>Key Terms</h2>
<dl>
{{range .Terms}}<dt>{{.Term}}</dt><dd>{{.Context}}</dd>
{{end}}</dl>{{end}}
</body>
</html>
`))

func writeQuizHTML(w io.Writer, quiz *models.Quiz) error {
	return quizTemplate.Execute(w, quizViews(quiz))
}

func writeSheetHTML(w io.Writer, sheet *models.StudySheet) error {
	return sheetTemplate.Execute(w, sheet)
}
