package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
	"github.com/ludo-technologies/laast/internal/language"
	svc "github.com/ludo-technologies/laast/service"
)

// TreeRequest asks for the LAAST of a single file
type TreeRequest struct {
	Path         string
	Language     string // empty infers from the extension
	Builder      laast.BuilderConfig
	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// TreeUseCase builds and renders one file's LAAST
type TreeUseCase struct {
	formatter *svc.TreeFormatter
	output    domain.ReportWriter
}

// NewTreeUseCase creates a new tree use case
func NewTreeUseCase() *TreeUseCase {
	return &TreeUseCase{
		formatter: svc.NewTreeFormatter(),
		output:    svc.NewFileOutputWriter(nil),
	}
}

// Execute parses req.Path and writes it in req.OutputFormat
func (uc *TreeUseCase) Execute(ctx context.Context, req TreeRequest) error {
	if req.Path == "" {
		return domain.NewValidationError("path cannot be empty")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewValidationError("output writer or output path is required")
	}

	var lang domain.Language
	if req.Language != "" {
		var err error
		if lang, err = language.ParseLanguage(req.Language); err != nil {
			return domain.NewInvalidInputError("invalid --lang value", err)
		}
	}

	builder, err := laast.NewBuilder(req.Builder)
	if err != nil {
		return fmt.Errorf("failed to configure parser: %w", err)
	}

	tree, err := svc.NewTreeService(builder).Build(ctx, req.Path, lang)
	if err != nil {
		return err
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	return uc.output.Write(out, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.FormatTree(tree, req.OutputFormat, w)
	})
}
