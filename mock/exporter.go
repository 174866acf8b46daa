package mock

import (
	"io"

	"github.com/fwojciec/sangga"
)

var _ sangga.PropertyExporter = (*PropertyExporter)(nil)

// PropertyExporter is a mock implementation of sangga.PropertyExporter.
type PropertyExporter struct {
	ExportPropertiesFn func(w io.Writer, props []*sangga.Property) error
}

func (e *PropertyExporter) ExportProperties(w io.Writer, props []*sangga.Property) error {
	return e.ExportPropertiesFn(w, props)
}
