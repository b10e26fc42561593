package view

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/csemotors/csemotors-go/internal/model"
)

//go:embed templates
var templateFS embed.FS

var fragments = template.Must(template.New("fragments").Funcs(funcs).ParseFS(templateFS, "templates/fragments/*.html"))

func renderFragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ClassificationGrid renders the vehicle cards of one classification, or a
// notice when there are none.
func ClassificationGrid(vehicles []model.Vehicle) (template.HTML, error) {
	return renderFragment("grid", vehicles)
}

// VehicleDetail renders the full description of one vehicle, or a
// not-found notice when v is nil.
func VehicleDetail(v *model.Vehicle) (template.HTML, error) {
	return renderFragment("detail", v)
}

// ClassificationSelect renders the classification dropdown with selected
// pre-chosen. A zero selected leaves the placeholder chosen.
func ClassificationSelect(classes []model.Classification, selected int64) (template.HTML, error) {
	return renderFragment("classification-select", struct {
		Classes  []model.Classification
		Selected int64
	}{classes, selected})
}
