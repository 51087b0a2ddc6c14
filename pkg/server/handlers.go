package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/jobstore"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/report"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/source"
)

// KickoffInputs names the screenshot and hierarchy to analyze.
// Base64Image may replace ImageURL.
type KickoffInputs struct {
	ImageURL    string `json:"image_url"`
	XMLURL      string `json:"xml_url"`
	Base64Image string `json:"base64image,omitempty"`
}

// KickoffRequest accepts the inputs either at top level or nested under
// "inputs".
type KickoffRequest struct {
	KickoffInputs
	Inputs *KickoffInputs `json:"inputs,omitempty"`
}

// KickoffResponse is returned by POST /kickoff.
type KickoffResponse struct {
	KickoffID string `json:"kickoff_id"`
}

// stateSuccess is the only state a stored kickoff can be in: failed
// kickoffs are answered directly and never stored.
const stateSuccess = "SUCCESS"

// StatusResponse is returned by GET /status/{kickoff_id}.
type StatusResponse struct {
	KickoffID     string               `json:"kickoff_id"`
	Data          *report.StatusData   `json:"data"`
	ImageAnalysis source.ImageAnalysis `json:"image_analysis"`
	State         string               `json:"state"`
}

func (req *KickoffRequest) resolve() KickoffInputs {
	if req.Inputs != nil {
		return *req.Inputs
	}
	return req.KickoffInputs
}

func (s *Server) handleKickoff(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var req KickoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	in := req.resolve()

	if in.XMLURL == "" || (in.ImageURL == "" && in.Base64Image == "") {
		writeError(w, core.ErrMissingInput)
		return
	}

	ctx := r.Context()

	var img []byte
	var err error
	if in.Base64Image != "" {
		img, err = source.DecodeImage(in.Base64Image)
	} else {
		img, err = s.fetcher.FetchImage(ctx, in.ImageURL)
	}
	if err != nil {
		logger.Warn("Kickoff image rejected: %v", err)
		writeError(w, err)
		return
	}

	xmlText, err := s.fetcher.FetchDocument(ctx, in.XMLURL)
	if err != nil {
		logger.Warn("Kickoff document fetch failed: %v", err)
		writeError(w, err)
		return
	}

	summary, err := s.analyzer.Analyze(ctx, xmlText)
	if err != nil {
		writeError(w, err)
		return
	}

	job := &jobstore.Job{
		ID:            s.newID(),
		XMLURL:        in.XMLURL,
		ImageURL:      in.ImageURL,
		Summary:       summary,
		ImageAnalysis: source.AnalyzeImage(img),
	}
	s.store.Put(job)
	logger.Info("Kickoff %s: %d elements, %d without resource-id (%d stored)",
		job.ID, summary.TotalElements, summary.ElementsWithoutResourceID, s.store.Len())

	writeJSON(w, http.StatusOK, KickoffResponse{KickoffID: job.ID})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	kickoffID := chi.URLParam(r, "kickoffID")

	top := s.cfg.Analysis.ExampleLimit
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "top must be a positive integer", http.StatusBadRequest)
			return
		}
		top = n
	}

	job, err := s.store.Get(kickoffID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		KickoffID:     job.ID,
		Data:          report.BuildStatus(job.Summary, top),
		ImageAnalysis: job.ImageAnalysis,
		State:         stateSuccess,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	summary, err := s.analyzer.Analyze(r.Context(), string(data))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
