package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/model"
)

var errEmptyBody = errors.New("request body is empty")

func decode(r *http.Request, v any) error {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(reqBody) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(reqBody, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Could not encode response", err, nil)
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	fields := logger.WithRequest(r)
	fields["error"] = err.Error()
	logger.Warn("Rejected request", fields)
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok", Version: Version})
}

func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var input model.GenerateRequestBody
	if err := decode(r, &input); err != nil && !errors.Is(err, errEmptyBody) {
		badRequest(w, r, err)
		return
	}
	p, err := generateProgression(input)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func HandleSwap(w http.ResponseWriter, r *http.Request) {
	var input model.SwapRequestBody
	if err := decode(r, &input); err != nil {
		badRequest(w, r, err)
		return
	}
	res, err := swapChord(input)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var input model.ScheduleRequestBody
	if err := decode(r, &input); err != nil {
		badRequest(w, r, err)
		return
	}
	res, _, err := scheduleProgression(input)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleArrange(w http.ResponseWriter, r *http.Request) {
	var input model.ArrangeRequestBody
	if err := decode(r, &input); err != nil {
		badRequest(w, r, err)
		return
	}
	res, err := arrangeProgression(input)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleExport(w http.ResponseWriter, r *http.Request) {
	var input model.ExportRequestBody
	if err := decode(r, &input); err != nil {
		badRequest(w, r, err)
		return
	}
	data, err := exportMidi(input)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="progression.mid"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("Could not write midi", err, logger.WithRequest(r))
	}
}
