package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/repairshop/internal/domain"
	"github.com/phenrril/repairshop/internal/usecase"
)

// --- customers ---

func (s *Server) handleCustomerSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("phone")
	if term == "" {
		term = r.URL.Query().Get("name")
	}
	if term == "" {
		term = r.URL.Query().Get("q")
	}
	customer, history, err := s.customers.Search(r.Context(), term)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customer": customer, "repairHistory": history})
}

func (s *Server) handleCustomerJobs(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid customer id"})
		return
	}
	jobs, err := s.customers.History(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// --- repair jobs ---

type intakeRequest struct {
	Customer struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	} `json:"customer"`
	DeviceBrand         string  `json:"deviceBrand"`
	DeviceModel         string  `json:"deviceModel"`
	ProblemDescription  string  `json:"problemDescription"`
	ReceivedAccessories string  `json:"receivedAccessories"`
	EstimatedCost       float64 `json:"estimatedCost"`
}

func (s *Server) handleJobIntake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	job, err := s.jobs.Intake(r.Context(), usecase.IntakeInput{
		Customer: domain.Customer{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Email:   req.Customer.Email,
			Address: req.Customer.Address,
		},
		DeviceBrand:         req.DeviceBrand,
		DeviceModel:         req.DeviceModel,
		ProblemDescription:  req.ProblemDescription,
		ReceivedAccessories: req.ReceivedAccessories,
		EstimatedCost:       req.EstimatedCost,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	f := domain.JobFilter{Status: domain.JobStatus(r.URL.Query().Get("status"))}
	jobs, err := s.jobs.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleJobGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid job id"})
		return
	}
	job, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid job id"})
		return
	}
	var req struct {
		Status domain.JobStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	if err := s.jobs.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	job, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid job id"})
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid multipart body"})
		return
	}
	var urls []string
	for _, fh := range r.MultipartForm.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			writeError(w, err)
			return
		}
		url, err := s.jobs.AttachPhoto(r.Context(), id, fh.Filename, f)
		f.Close()
		if err != nil {
			log.Error().Err(err).Str("job", id.String()).Str("file", fh.Filename).Msg("photo upload")
			writeError(w, err)
			return
		}
		urls = append(urls, url)
	}
	writeJSON(w, http.StatusOK, map[string]any{"photos": urls})
}

// --- products / inventory ---

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	created, err := s.products.Create(r.Context(), p)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.LowStock(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleProductExport(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Name", "Category", "Default Price", "Current Price", "Stock", "Low Stock Threshold", "Supplier"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range list {
		values := []any{p.Name, string(p.Category), p.DefaultPrice, p.CurrentPrice}
		if p.StockQuantity != nil {
			values = append(values, *p.StockQuantity)
		} else {
			values = append(values, "N/A")
		}
		if p.LowStockThreshold != nil {
			values = append(values, *p.LowStockThreshold)
		} else {
			values = append(values, "")
		}
		if p.SupplierDetails != nil {
			values = append(values, *p.SupplierDetails)
		} else {
			values = append(values, "")
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("inventory export")
	}
}

// --- billing / sales ---

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req usecase.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	sale, err := s.billing.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saleView(sale))
}

func (s *Server) handleSaleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid sale id"})
		return
	}
	sale, err := s.billing.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saleView(sale))
}

func (s *Server) handleSaleByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.URL.Query().Get("job"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "job query parameter required"})
		return
	}
	sale, err := s.billing.GetByJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saleView(sale))
}

// saleView decorates a sale with display-rounded amounts; the stored values
// stay unrounded.
func saleView(s *domain.Sale) map[string]any {
	return map[string]any{
		"sale": s,
		"display": map[string]string{
			"subTotal":    money(s.SubTotal),
			"gstAmount":   money(s.GSTAmount),
			"totalAmount": money(s.TotalAmount),
			"gstPercent":  strconv.FormatFloat(s.GSTRate*100, 'f', -1, 64) + "%",
		},
	}
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }
