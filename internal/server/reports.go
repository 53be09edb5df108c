package server

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/async"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/entity"
)

type createReportRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	Force    bool   `json:"force"`
}

type createReportResponse struct {
	ReportID  uuid.UUID `json:"report_id"`
	Duplicate bool      `json:"duplicate"`
	Queued    bool      `json:"queued"`
}

// handleCreateReport stores inline report text and queues extraction.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxTextBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgumentError("request body must be JSON"))
		return
	}
	v := common.NewValidator().
		Field("text", req.Text, common.Required).
		Field("filename", req.Filename, func(f string, val interface{}) *common.ValidationError {
			return common.MaxLength(f, val, 255)
		})
	if err := common.ValidateAndReturnError(v); err != nil {
		common.WriteError(w, err)
		return
	}
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "inline.txt"
	}

	hash := sha256.Sum256([]byte(req.Text))
	report := &entity.LabReport{
		SourcePath:  "inline:" + filename,
		Filename:    filename,
		ContentHash: hash[:],
		RawText:     req.Text,
		Status:      constants.ReportStatusQueued,
	}
	stored, duplicate, err := s.reports.UpsertByHash(r.Context(), report)
	if err != nil {
		s.logger.Error("failed to store report", "error", err)
		common.WriteError(w, err)
		return
	}

	queued := false
	if !duplicate || req.Force {
		if err := s.queue.Enqueue(r.Context(), async.Job{
			ReportID:    stored.ID,
			Force:       req.Force,
			SubmittedAt: time.Now().UTC(),
		}); err != nil {
			common.WriteError(w, err)
			return
		}
		queued = true
	}
	writeJSON(w, http.StatusAccepted, createReportResponse{
		ReportID:  stored.ID,
		Duplicate: duplicate,
		Queued:    queued,
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			common.WriteError(w, common.InvalidArgumentError("limit must be a positive integer"))
			return
		}
		limit = n
	}
	reports, err := s.reports.List(r.Context(), limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	// Raw text can be large; the listing carries metadata only.
	for _, rep := range reports {
		rep.RawText = ""
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) reportID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		common.WriteError(w, common.InvalidArgumentErrorf("report id %q must be a UUID", raw))
		return uuid.Nil, false
	}
	return id, true
}

type reportDetail struct {
	Report  *entity.LabReport        `json:"report"`
	Results []*entity.NutrientResult `json:"results"`
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reportID(w, r)
	if !ok {
		return
	}
	report, err := s.reports.GetByID(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	results, err := s.results.ListByReport(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportDetail{Report: report, Results: results})
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reportID(w, r)
	if !ok {
		return
	}
	body, err := s.exporter.ExportReportXLSX(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "bloodwork-"+id.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
