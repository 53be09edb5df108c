package server

import (
	"encoding/json"
	"net/http"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/diagnose"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/interpret"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

// maxTextBytes caps inline request bodies; report files arrive through
// ingestion instead.
const maxTextBytes = 1 << 20

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Values     map[string]float64            `json:"values"`
	Confidence map[string]float64            `json:"confidence"`
	Sources    map[string]constants.Strategy `json:"sources"`
	Findings   []interpret.Finding           `json:"findings"`
}

func (s *Server) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req extractRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxTextBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgumentError("request body must be JSON with a text field"))
		return "", false
	}
	v := common.NewValidator().Field("text", req.Text, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		common.WriteError(w, err)
		return "", false
	}
	return req.Text, true
}

// handleExtract runs synchronous extraction over inline text.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	res := s.extractor.Extract(text)
	writeJSON(w, http.StatusOK, extractResponse{
		Values:     res.Values,
		Confidence: res.Confidence,
		Sources:    res.Sources,
		Findings:   interpret.Classify(s.reg, res),
	})
}

// handleDiagnose explains why inline text yields little. The extraction runs
// first so the diagnosis can compare what the text promises with what was
// actually found.
func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	res := s.extractor.Extract(text)
	d := diagnose.Run(text, res)
	writeJSON(w, http.StatusOK, struct {
		Extracted int                `json:"extracted"`
		Diagnosis diagnose.Diagnosis `json:"diagnosis"`
	}{Extracted: res.Len(), Diagnosis: d})
}

type nutrientInfo struct {
	Key       string         `json:"key"`
	Name      string         `json:"name"`
	Unit      string         `json:"unit"`
	Normal    registry.Range `json:"normal_range"`
	Plausible registry.Range `json:"plausible_range"`
	Aliases   []string       `json:"aliases,omitempty"`
}

// handleNutrients lists the catalogue the extractor was built with.
func (s *Server) handleNutrients(w http.ResponseWriter, _ *http.Request) {
	specs := s.reg.All()
	out := make([]nutrientInfo, 0, len(specs))
	for _, spec := range specs {
		out = append(out, nutrientInfo{
			Key:       spec.Key,
			Name:      spec.Name(),
			Unit:      spec.Unit,
			Normal:    spec.Normal,
			Plausible: spec.Plausible,
			Aliases:   spec.Aliases,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
