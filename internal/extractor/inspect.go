package extractor

import (
	"bytes"
	"fmt"

	"github.com/Sourabh71/AI-Analyst/internal/models"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspect reads document info and the encryption flag with pdfcpu. It is stricter
// than the text reader, so callers treat its failure as informational.
func Inspect(data []byte) (info *models.DocumentInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("pdfcpu panic: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF structure: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to validate PDF: %w", err)
	}

	return &models.DocumentInfo{
		Title:     ctx.Title,
		Author:    ctx.Author,
		Producer:  ctx.Producer,
		Encrypted: ctx.Encrypt != nil,
	}, nil
}
