package libol

import (
	"io"

	"github.com/lamdn/circura/internal/catalog"
)

type Importer struct {
	parser *Parser
}

func New() *Importer {
	return &Importer{parser: NewParser()}
}

func (i *Importer) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	return i.parser.Parse(r)
}
