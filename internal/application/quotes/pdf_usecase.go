package quotes

import (
	"context"
	"fmt"

	"github.com/decortina/ventas-api/internal/domain"
	"github.com/decortina/ventas-api/internal/domain/entity"
	"github.com/decortina/ventas-api/internal/domain/repository"
)

// QuotePDFGenerator puerto hacia el renderizador de PDF (infraestructura).
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote, prospect *entity.Prospect) ([]byte, error)
}

// PDFUseCase genera el PDF imprimible de una cotización para enviarlo al
// cliente.
type PDFUseCase struct {
	quoteRepo    repository.QuoteRepository
	prospectRepo repository.ProspectRepository
	generator    QuotePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	quoteRepo repository.QuoteRepository,
	prospectRepo repository.ProspectRepository,
	generator QuotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{quoteRepo: quoteRepo, prospectRepo: prospectRepo, generator: generator}
}

// GenerateQuotePDF obtiene la cotización y su prospecto y devuelve los bytes del PDF.
func (uc *PDFUseCase) GenerateQuotePDF(ctx context.Context, quoteID string) ([]byte, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, fmt.Errorf("cotización %s: %w", quoteID, domain.ErrNotFound)
	}
	prospect, err := uc.prospectRepo.Get(ctx, quote.ProspectID)
	if err != nil {
		return nil, err
	}
	if prospect == nil {
		return nil, fmt.Errorf("prospecto %s: %w", quote.ProspectID, domain.ErrNotFound)
	}
	return uc.generator.GenerateQuotePDF(ctx, quote, prospect)
}
