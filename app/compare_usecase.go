package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/laast/domain"
	svc "github.com/ludo-technologies/laast/service"
)

// ConfigMerger overlays explicitly requested settings onto file configuration
type ConfigMerger interface {
	MergeConfig(base, override *domain.CompareRequest) *domain.CompareRequest
}

// CompareUseCase orchestrates a corpus comparison: configuration, ingestion,
// similarity and output
type CompareUseCase struct {
	service      domain.CompareService
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
	output       domain.ReportWriter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(service domain.CompareService, formatter domain.CompareOutputFormatter, configLoader domain.CompareConfigurationLoader) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// Execute runs the comparison and writes the report. The report is written
// even when fewer than two files could be parsed; domain.ErrInsufficientInput
// is returned afterwards so callers can fail the run.
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	merged, err := uc.prepareRequest(req)
	if err != nil {
		return nil, err
	}

	if err := merged.Validate(); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Compare(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("comparison failed: %w", err)
	}

	var out io.Writer
	if merged.OutputPath == "" {
		out = merged.OutputWriter
	}
	if err := uc.output.Write(out, merged.OutputPath, merged.OutputFormat, func(w io.Writer) error {
		return uc.formatter.FormatCompareResponse(response, merged.OutputFormat, merged.ShowDetails, w)
	}); err != nil {
		return response, domain.NewOutputError("failed to write output", err)
	}

	if response.InsufficientInput {
		return response, domain.ErrInsufficientInput
	}
	return response, nil
}

// prepareRequest loads file configuration for the corpus and applies req on top
func (uc *CompareUseCase) prepareRequest(req domain.CompareRequest) (*domain.CompareRequest, error) {
	if req.Path == "" {
		return nil, domain.NewValidationError("path cannot be empty")
	}
	if uc.configLoader == nil {
		return &req, nil
	}

	fileReq, err := uc.configLoader.LoadCompareConfig(req.ConfigPath, req.Path)
	if err != nil {
		return nil, err
	}

	if merger, ok := uc.configLoader.(ConfigMerger); ok {
		return merger.MergeConfig(fileReq, &req), nil
	}

	fileReq.Path = req.Path
	fileReq.OutputWriter = req.OutputWriter
	fileReq.OutputPath = req.OutputPath
	fileReq.ConfigPath = req.ConfigPath
	return fileReq, nil
}

// CompareUseCaseBuilder provides a fluent builder for CompareUseCase
type CompareUseCaseBuilder struct {
	service      domain.CompareService
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
	output       domain.ReportWriter
}

func NewCompareUseCaseBuilder() *CompareUseCaseBuilder { return &CompareUseCaseBuilder{} }

func (b *CompareUseCaseBuilder) WithService(s domain.CompareService) *CompareUseCaseBuilder {
	b.service = s
	return b
}
func (b *CompareUseCaseBuilder) WithFormatter(f domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *CompareUseCaseBuilder) WithConfigLoader(l domain.CompareConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = l
	return b
}
func (b *CompareUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *CompareUseCaseBuilder {
	b.output = w
	return b
}

func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &CompareUseCase{
		service:      b.service,
		formatter:    b.formatter,
		configLoader: b.configLoader,
		output:       b.output,
	}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
