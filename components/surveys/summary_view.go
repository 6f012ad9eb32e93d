package surveys

import (
	"net/url"
	"path"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Summary block kinds understood by the summary template.
const (
	SummaryKindText       = "text"
	SummaryKindOption     = "option"
	SummaryKindMatrix     = "matrix"
	SummaryKindFileUpload = "file_upload"
)

// FieldSummaryView is one field of the summary page with its optional summary block.
type FieldSummaryView struct {
	Field          Field
	HelpHTML       string
	Presentational bool
	Summary        *SummaryBlock
}

// SummaryBlock is the rendered shape of one FieldSummary variant.
type SummaryBlock struct {
	Kind                  string
	Values                []string
	Options               []OptionRow
	ChartHTML             string
	Matrix                *MatrixView
	Files                 []FileCard
	CountResponses        int
	CountMissingResponses int
	CountsLine            string
}

// OptionRow is one choice with its count and share of answered responses.
type OptionRow struct {
	Slug    string
	Label   string
	Count   int
	Percent int
}

// MatrixView is a question x choice grid of counts.
type MatrixView struct {
	Columns []string
	Rows    []MatrixRow
}

// MatrixRow is one matrix question.
type MatrixRow struct {
	Label  string
	Counts []int
}

// FileCard is one uploaded file reference.
type FileCard struct {
	URL  string
	Name string
}

// SummaryDispatcher maps field summaries to view blocks.
type SummaryDispatcher struct {
	Messages Messages
	Charts   *ChartRenderer
}

// DispatchFieldSummaries walks fields in order and attaches the matching
// summary block. A field without a summary entry, or with an unknown summary
// variant, renders with a nil Summary.
func (d SummaryDispatcher) DispatchFieldSummaries(fields []Field, summary SurveySummary) ([]FieldSummaryView, error) {
	views := make([]FieldSummaryView, 0, len(fields))
	for _, field := range fields {
		view := FieldSummaryView{
			Field:          field,
			HelpHTML:       RenderHelpText(field.HelpText),
			Presentational: field.Type.Presentational(),
		}
		if fieldSummary, ok := summary[field.Slug]; ok && fieldSummary != nil {
			block, err := d.block(field, fieldSummary)
			if err != nil {
				return nil, err
			}
			view.Summary = block
		}
		views = append(views, view)
	}
	return views, nil
}

func (d SummaryDispatcher) block(field Field, fieldSummary FieldSummary) (*SummaryBlock, error) {
	var block *SummaryBlock
	switch typed := fieldSummary.(type) {
	case TextFieldSummary:
		block = &SummaryBlock{Kind: SummaryKindText, Values: nonEmpty(typed.Values)}
	case OptionFieldSummary:
		block = &SummaryBlock{Kind: SummaryKindOption, Options: optionRows(field, typed)}
		if d.Charts != nil {
			chart, err := d.Charts.RenderOptionChart(field, typed)
			if err != nil {
				return nil, err
			}
			block.ChartHTML = chart
		}
	case MatrixFieldSummary:
		block = &SummaryBlock{Kind: SummaryKindMatrix, Matrix: matrixView(field, typed)}
	case FileUploadFieldSummary:
		block = &SummaryBlock{Kind: SummaryKindFileUpload, Files: fileCards(typed.URLs)}
	default:
		// UnknownFieldSummary: the field renders without a summary.
		return nil, nil
	}
	block.CountResponses, block.CountMissingResponses = fieldSummary.Counts()
	block.CountsLine = d.countsLine(block.CountResponses, block.CountMissingResponses)
	return block, nil
}

func (d SummaryDispatcher) countsLine(responses, missing int) string {
	return d.Messages.Format("survey.counts_line", map[string]any{
		"responses_label": d.Messages.Get("survey.attributes.count_responses"),
		"responses":       responses,
		"missing_label":   d.Messages.Get("survey.attributes.count_missing_responses"),
		"missing":         missing,
	})
}

func optionRows(field Field, summary OptionFieldSummary) []OptionRow {
	bars := OptionBars(field, summary)
	total := summary.CountResponses
	rows := make([]OptionRow, len(bars))
	for i, bar := range bars {
		row := OptionRow{Slug: bar.Slug, Label: bar.Label, Count: bar.Count}
		if total > 0 {
			row.Percent = bar.Count * 100 / total
		}
		rows[i] = row
	}
	return rows
}

func matrixView(field Field, summary MatrixFieldSummary) *MatrixView {
	columns := field.Choices
	if len(columns) == 0 {
		seen := map[string]struct{}{}
		for _, counts := range summary.Rows {
			for slug := range counts {
				if _, ok := seen[slug]; !ok {
					seen[slug] = struct{}{}
					columns = append(columns, Choice{Slug: slug})
				}
			}
		}
		sortChoices(columns)
	}
	questions := field.Questions
	if len(questions) == 0 {
		for _, slug := range sortedKeys(summary.Rows) {
			questions = append(questions, Choice{Slug: slug})
		}
	}

	view := &MatrixView{Columns: make([]string, len(columns))}
	for i, column := range columns {
		view.Columns[i] = field.ChoiceTitle(column.Slug)
	}
	for _, question := range questions {
		counts := make([]int, len(columns))
		for i, column := range columns {
			counts[i] = summary.Rows[question.Slug][column.Slug]
		}
		view.Rows = append(view.Rows, MatrixRow{Label: field.QuestionTitle(question.Slug), Counts: counts})
	}
	return view
}

func sortChoices(choices []Choice) {
	slugs := make(map[string]Choice, len(choices))
	for _, choice := range choices {
		slugs[choice.Slug] = choice
	}
	for i, slug := range sortedKeys(slugs) {
		choices[i] = slugs[slug]
	}
}

func fileCards(urls []string) []FileCard {
	cards := make([]FileCard, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" || !isWebURL(raw) {
			continue
		}
		cards = append(cards, FileCard{URL: raw, Name: fileName(raw)})
	}
	return cards
}

// isWebURL accepts absolute http(s) URLs only; uploads are rendered as links.
func isWebURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

func fileName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Path == "" {
		return raw
	}
	name := path.Base(parsed.Path)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "/" || name == "." {
		return raw
	}
	return name
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}

// RenderHelpText converts field help text from Markdown to HTML. Raw HTML in
// the source is dropped and links with untrusted schemes are not linked.
func RenderHelpText(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | html.Safelink | html.HrefTargetBlank,
	})
	return strings.TrimSpace(string(markdown.ToHTML([]byte(source), p, renderer)))
}
