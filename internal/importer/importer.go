package importer

import (
	"io"

	"github.com/lamdn/circura/internal/catalog"
)

type Source string

const (
	SourceLibol Source = "libol"
)

type Importer interface {
	Parse(r io.Reader) ([]catalog.CreateParams, error)
}
