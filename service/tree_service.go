package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
	"github.com/ludo-technologies/laast/internal/language"
)

// TreeService builds the LAAST of a single file
type TreeService struct {
	builder *laast.Builder
}

// NewTreeService creates a new tree service
func NewTreeService(builder *laast.Builder) *TreeService {
	return &TreeService{builder: builder}
}

// Build reads path and normalizes it. A zero lang infers the language from
// the file extension.
func (s *TreeService) Build(ctx context.Context, path string, lang domain.Language) (*laast.Laast, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot access file: %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a regular file: %s", path), nil)
	}

	name := filepath.Base(path)
	if lang == 0 {
		if lang, err = language.Infer(name); err != nil {
			return nil, err
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read file: %s", path), err)
	}

	return s.builder.Parse(ctx, name, lang, source)
}
