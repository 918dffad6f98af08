package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eggnunes/crmidea-sub000/internal/importer"
	"github.com/eggnunes/crmidea-sub000/internal/infra/http/middleware"
	"github.com/eggnunes/crmidea-sub000/internal/usecase"
)

type ImportHandler struct {
	ImportUC *usecase.ImportLeadsUseCase
}

func NewImportHandler(uc *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{ImportUC: uc}
}

// PreviewResponse junta o lote consolidado com as informações que a tela de
// mapeamento precisa: colunas do arquivo e o mapeamento sugerido.
type PreviewResponse struct {
	*usecase.ImportPreview
	Columns         []string                `json:"columns"`
	DetectedMapping *importer.ColumnMapping `json:"detected_mapping,omitempty"`
}

// HandlePreview recebe a planilha via multipart, roda o pipeline de
// normalização e devolve o lote para confirmação. Nada é persistido aqui.
//
// Campos do form: file (obrigatório), source, mapping (JSON de ColumnMapping,
// opcional), overrides (JSON literal -> ProductOverride, opcional).
func (h *ImportHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "multipart inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "campo 'file' é obrigatório", http.StatusBadRequest)
		return
	}
	defer file.Close()

	opts := usecase.ImportOptions{
		Source: r.FormValue("source"),
	}
	if opts.Source == "" {
		opts.Source = "Planilha"
	}

	if raw := r.FormValue("mapping"); raw != "" {
		var mapping importer.ColumnMapping
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			http.Error(w, "campo 'mapping' não é um JSON válido: "+err.Error(), http.StatusBadRequest)
			return
		}
		opts.Mapping = &mapping
	}

	if raw := r.FormValue("overrides"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Overrides); err != nil {
			http.Error(w, "campo 'overrides' não é um JSON válido: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	sheet, err := importer.ReadSpreadsheet(header.Filename, file)
	if err != nil {
		middleware.RecordImport("invalid_file", 0)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preview, err := h.ImportUC.Preview(r.Context(), sheet, opts)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordImport("rejected", 0)
			writeDomainError(w, err, http.StatusUnprocessableEntity)
			return
		}
		middleware.RecordImport("error", 0)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	middleware.RecordImport("previewed", 0)
	middleware.RecordUnrecognizedProducts(len(preview.UnrecognizedProducts))

	resp := PreviewResponse{
		ImportPreview: preview,
		Columns:       sheet.Columns,
	}
	// Sem mapeamento manual, sugere um a partir da primeira linha para o
	// usuário ajustar na tela.
	if opts.Mapping == nil && len(sheet.Rows) > 0 {
		detected := importer.DetectMapping(sheet.Rows[0])
		resp.DetectedMapping = &detected
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// HandleConfirm persiste o lote que o usuário aprovou na tela de preview.
func (h *ImportHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var input usecase.ConfirmImportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	if input.OwnerID == "" {
		input.OwnerID = r.Header.Get("X-User-ID")
	}

	output, err := h.ImportUC.Confirm(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordImport("rejected", 0)
			writeDomainError(w, err, http.StatusBadRequest)
			return
		}
		middleware.RecordImport("error", 0)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	middleware.RecordImport("confirmed", output.Imported)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(output)
}

func writeDomainError(w http.ResponseWriter, err error, status int) {
	domainErr, ok := err.(*usecase.DomainError)
	if !ok {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  domainErr.Code,
		"error": domainErr.Message,
	})
}
