package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
	"github.com/eggnunes/crmidea-sub000/internal/importer"
	"github.com/eggnunes/crmidea-sub000/internal/infra/queue"
)

// ImportOptions configura um processamento de planilha.
type ImportOptions struct {
	// Source é o rótulo do fornecedor da planilha (ex: "Hotmart").
	Source string

	// Mapping, quando presente, ativa o caminho de mapeamento manual e
	// desliga os classificadores automáticos.
	Mapping *importer.ColumnMapping

	// Overrides mapeia texto literal de produto para a escolha do usuário na
	// tela de confirmação de produtos.
	Overrides map[string]importer.ProductOverride
}

// ImportPreview é o lote consolidado mostrado ao usuário antes de persistir.
type ImportPreview struct {
	Leads                []importer.CandidateLead `json:"leads"`
	Stats                importer.Stats           `json:"stats"`
	UnrecognizedProducts []string                 `json:"unrecognized_products,omitempty"`
	NewProducts          []string                 `json:"new_products,omitempty"`
}

type ConfirmImportInput struct {
	OwnerID     string                   `json:"owner_id"`
	Source      string                   `json:"source"`
	Leads       []importer.CandidateLead `json:"leads"`
	NewProducts []string                 `json:"new_products,omitempty"`
}

type ConfirmImportOutput struct {
	Imported int    `json:"imported"`
	Msg      string `json:"msg"`
}

type ImportLeadsUseCase struct {
	LeadRepo    LeadRepositoryInterface
	ProductRepo ProductRepositoryInterface
	Queue       QueueProducerInterface
}

func NewImportLeadsUseCase(
	leadRepo LeadRepositoryInterface,
	productRepo ProductRepositoryInterface,
	queueProducer QueueProducerInterface,
) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{
		LeadRepo:    leadRepo,
		ProductRepo: productRepo,
		Queue:       queueProducer,
	}
}

// Preview roda o pipeline de normalização e consolidação sobre a planilha
// decodificada e devolve o lote final para confirmação. Nada é persistido.
func (uc *ImportLeadsUseCase) Preview(ctx context.Context, sheet *importer.Spreadsheet, opts ImportOptions) (*ImportPreview, error) {
	if sheet == nil || len(sheet.Rows) == 0 {
		return nil, &DomainError{Code: "EMPTY_FILE", Message: "planilha sem linhas de dados"}
	}

	var candidates []importer.CandidateLead
	var unrecognized []string

	if opts.Mapping != nil {
		mapping := opts.Mapping.Sanitize(sheet.Columns)
		candidates = importer.ProcessWithMapping(sheet.Rows, mapping, opts.Source)
	} else {
		builder := importer.NewBuilder(opts.Source, opts.Overrides)
		for _, row := range sheet.Rows {
			if candidate, ok := builder.BuildCandidate(row); ok {
				candidates = append(candidates, candidate)
			}
		}
		unrecognized = builder.UnrecognizedProducts()
	}

	final, stats, err := importer.Consolidate(candidates)
	if err != nil {
		if errors.Is(err, importer.ErrNoLeads) {
			return nil, &DomainError{Code: "NO_LEADS", Message: "nenhum lead encontrado: confira o mapeamento de colunas"}
		}
		return nil, err
	}

	return &ImportPreview{
		Leads:                final,
		Stats:                stats,
		UnrecognizedProducts: unrecognized,
		NewProducts:          requestedNewProducts(opts.Overrides),
	}, nil
}

// requestedNewProducts extrai, sem repetição, os nomes de produto que o
// usuário pediu para criar via sentinela create-new.
func requestedNewProducts(overrides map[string]importer.ProductOverride) []string {
	if len(overrides) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for literal, ov := range overrides {
		if ov.Target != entity.ProductCreateNew {
			continue
		}
		name := strings.TrimSpace(ov.NewProductName)
		if name == "" {
			name = strings.TrimSpace(literal)
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Confirm persiste o lote confirmado: cria os produtos novos, insere os
// leads e agenda follow-up para os carrinhos abandonados.
func (uc *ImportLeadsUseCase) Confirm(ctx context.Context, input ConfirmImportInput) (*ConfirmImportOutput, error) {
	if strings.TrimSpace(input.OwnerID) == "" {
		return nil, &DomainError{Code: "OWNER_REQUIRED", Message: "owner_id é obrigatório"}
	}
	if len(input.Leads) == 0 {
		return nil, &DomainError{Code: "NO_LEADS", Message: "nada para importar"}
	}

	now := time.Now()
	leads := make([]*entity.Lead, 0, len(input.Leads))
	for _, c := range input.Leads {
		leads = append(leads, &entity.Lead{
			ID:         uuid.New().String(),
			Name:       c.Name,
			Email:      c.Email,
			Phone:      c.Phone,
			Product:    c.Product,
			Status:     c.Status,
			Value:      c.Value,
			Source:     c.Source,
			Notes:      c.Notes,
			OccurredAt: c.OccurredAt,
			OwnerID:    input.OwnerID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	txn := NewTransaction()

	newProducts := make([]*entity.Product, 0, len(input.NewProducts))
	for _, name := range input.NewProducts {
		newProducts = append(newProducts, entity.NewProduct(name, productSlug(name)))
	}

	if len(newProducts) > 0 {
		txn.AddOperation("create_products", func(ctx context.Context) error {
			for _, p := range newProducts {
				if err := uc.ProductRepo.Create(ctx, p); err != nil {
					return err
				}
			}
			return nil
		})
		txn.AddCompensation("delete_products", func(ctx context.Context) error {
			for _, p := range newProducts {
				if err := uc.ProductRepo.DeleteBySlug(ctx, p.Slug); err != nil {
					return err
				}
			}
			return nil
		})
	}

	txn.AddOperation("insert_leads", func(ctx context.Context) error {
		return uc.LeadRepo.BulkInsert(ctx, input.OwnerID, leads)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist import batch: " + err.Error(),
		}
	}

	// Follow-up fora do caminho crítico: falha de fila não desfaz o import.
	if uc.Queue != nil {
		go uc.publishFollowUps(input.Leads, leads)
	}

	return &ConfirmImportOutput{
		Imported: len(leads),
		Msg:      "Importação concluída com sucesso!",
	}, nil
}

func (uc *ImportLeadsUseCase) publishFollowUps(candidates []importer.CandidateLead, leads []*entity.Lead) {
	ctx := context.Background()
	for i, c := range candidates {
		if c.Event != importer.EventAbandoned {
			continue
		}
		channel := queue.ChannelEmail
		if c.Phone != "" {
			channel = queue.ChannelWhatsApp
		}
		// A mensagem leva o nome de exibição do produto, não o id de catálogo.
		productName := c.Product.DisplayName()
		if productName == "" {
			productName = string(c.Product)
		}
		payload := queue.FollowUpPayload{
			LeadID:  leads[i].ID,
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Product: productName,
			Channel: channel,
		}
		if err := uc.Queue.PublishFollowUp(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao agendar follow-up para %s: %v", c.Email, err)
		}
	}
}

// productSlug reduz o nome do produto a um slug de catálogo.
func productSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
