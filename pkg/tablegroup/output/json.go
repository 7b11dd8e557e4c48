// Package output provides JSON serialization of export documents.
package output

import (
	"encoding/json"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"
)

// ToJSON serializes the full export document.
func ToJSON(doc *models.ExportDocument, pretty bool) ([]byte, error) {
	return marshal(doc, pretty)
}

// SummaryToJSON serializes only the summary rows of doc.
func SummaryToJSON(doc *models.ExportDocument, pretty bool) ([]byte, error) {
	view := struct {
		Source  string              `json:"source"`
		Summary []models.SummaryRow `json:"summary"`
	}{
		Source:  doc.Source,
		Summary: doc.Summary,
	}
	return marshal(view, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
