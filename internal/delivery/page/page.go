// Package page renders the single dashboard page shared by the HTTP server
// and the command-line renderer.
package page

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"

	"github.com/listinglens/dashboard/internal/domain"
)

// TemplateName is the name the dashboard template is registered under
const TemplateName = "dashboard.html"

// Fixed page copy
const (
	Title          = "📊 Banggood Data Analysis Dashboard"
	Prompt         = "Upload the cleaned CSV file to start analysis."
	UploadWarning  = "Please upload a CSV file to continue."
	SuccessNotice  = "Data Preparation Complete"
	DefaultNotice  = "No file uploaded: showing the bundled default dataset."
	PreviewHeading = "🔍 Data Preview"
)

//go:embed templates/dashboard.html
var templates embed.FS

var dashboardTemplate = template.Must(template.New(TemplateName).ParseFS(templates, "templates/dashboard.html"))

// Template returns the parsed page template
func Template() *template.Template {
	return dashboardTemplate
}

// View is the data behind one page render
type View struct {
	Title          string
	Prompt         string
	PreviewHeading string
	Upload         bool // show the upload form
	Warning        string
	Error          string
	Notice         string
	SourceNote     string
	Report         *domain.Report
	Charts         []ChartView
}

// ChartView is one chart section
type ChartView struct {
	Key         domain.ChartKey
	Title       string
	Image       template.URL
	Href        string // standalone SVG link, empty when unavailable
	Placeholder bool
}

func base() View {
	return View{
		Title:          Title,
		Prompt:         Prompt,
		PreviewHeading: PreviewHeading,
		Upload:         true,
	}
}

// AwaitingUpload is the initial state: a prompt and nothing else
func AwaitingUpload() View {
	v := base()
	v.Warning = UploadWarning
	return v
}

// Failed reports an error that halted the render pass
func Failed(err error) View {
	v := base()
	v.Error = err.Error()
	return v
}

// Rendered shows a complete report. linkBase, when set, is the URL prefix of
// the report's chart endpoints.
func Rendered(report *domain.Report, linkBase string) View {
	v := base()
	v.Report = report
	v.Notice = SuccessNotice
	if report.Source == domain.SourceDefault {
		v.SourceNote = DefaultNotice
	}
	for _, c := range report.Charts {
		cv := ChartView{
			Key:         c.Key,
			Title:       c.Title,
			Image:       dataURI(c.SVG),
			Placeholder: c.Placeholder,
		}
		if linkBase != "" {
			cv.Href = linkBase + "/" + string(c.Key)
		}
		v.Charts = append(v.Charts, cv)
	}
	return v
}

// Render writes the page
func Render(w io.Writer, v View) error {
	return dashboardTemplate.Execute(w, v)
}

// dataURI embeds an SVG as an image source. The SVG comes from our own renderer.
func dataURI(svg []byte) template.URL {
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg))
}
