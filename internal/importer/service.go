package importer

import (
	"fmt"
	"io"

	"github.com/lamdn/circura/internal/catalog"
	"github.com/lamdn/circura/internal/importer/libol"
)

type Service struct {
	libolImporter Importer
}

func NewService() *Service {
	return &Service{
		libolImporter: libol.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]catalog.CreateParams, error) {
	var importer Importer

	switch source {
	case SourceLibol:
		importer = s.libolImporter
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return importer.Parse(r)
}
