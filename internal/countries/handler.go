package countries

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/zjoart/paises/pkg/logger"
)

const (
	validationErrorTitle = "Error de validación"
	maxBodyBytes         = 1 << 20
)

// now is swapped in tests for stable timestamps
var now = func() time.Time { return time.Now() }

// ErrorResponse is the body of every validation failure
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
}

// BatchError reports the failure of one element of a create batch
type BatchError struct {
	Index int `json:"indice"`
	ErrorResponse
}

// BatchResponse is returned by the create endpoint
type BatchResponse struct {
	Saved  []Country    `json:"paises"`
	Errors []BatchError `json:"errores"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details interface{}) {
	payload := map[string]interface{}{"error": msg}
	if details != nil {
		payload["details"] = details
	}
	writeJSON(w, status, payload)
}

func validationPayload(message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: now().UTC().Format(time.RFC3339Nano),
		Error:     validationErrorTitle,
		Message:   message,
		Status:    http.StatusBadRequest,
	}
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, validationPayload(message))
}

// writeFailure maps validation failures to 400 and everything else to 500
func writeFailure(w http.ResponseWriter, op string, err error) {
	if ve, ok := AsValidation(err); ok {
		writeValidationError(w, ve.Message)
		return
	}
	logger.Error(op+" failed", logger.WithError(err))
	writeError(w, http.StatusInternalServerError, "Internal server error", nil)
}

// writeOptional writes c, or an empty 200 when there is no match
func writeOptional(w http.ResponseWriter, c *Country) {
	if c == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// decodeCandidates accepts either a JSON array of countries or a single object
func decodeCandidates(body io.Reader) ([]Country, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty body")
	}

	if raw[0] == '[' {
		var list []Country
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var one Country
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []Country{one}, nil
}

// RegisterRoutes mounts country endpoints under /paises
func RegisterRoutes(r *mux.Router, svc *Service, imagePath string) {
	sub := r.PathPrefix("/paises").Subrouter()

	list := func(w http.ResponseWriter, req *http.Request) {
		out, err := svc.List(req.Context())
		if err != nil {
			writeFailure(w, "list countries", err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
	sub.HandleFunc("", list).Methods("GET")
	sub.HandleFunc("/", list).Methods("GET")

	create := func(w http.ResponseWriter, req *http.Request) {
		candidates, err := decodeCandidates(req.Body)
		if err != nil {
			logger.Warn("create countries: bad body", logger.WithError(err))
			writeValidationError(w, "Cuerpo de la solicitud inválido: "+err.Error())
			return
		}

		res := svc.CreateMany(req.Context(), candidates)
		resp := BatchResponse{Saved: res.Saved, Errors: []BatchError{}}
		for _, ie := range res.Errors {
			ve, ok := AsValidation(ie.Err)
			if !ok {
				logger.Error("create countries: element failed", logger.Fields{"index": ie.Index}, logger.WithError(ie.Err))
				writeError(w, http.StatusInternalServerError, "Internal server error", nil)
				return
			}
			resp.Errors = append(resp.Errors, BatchError{Index: ie.Index, ErrorResponse: validationPayload(ve.Message)})
		}

		status := http.StatusOK
		if len(candidates) > 0 && len(res.Saved) == 0 {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, resp)
	}
	sub.HandleFunc("", create).Methods("POST")
	sub.HandleFunc("/", create).Methods("POST")

	for _, route := range []struct {
		path  string
		field Field
	}{
		{"/nombre/{value}", FieldName},
		{"/continente/{value}", FieldContinent},
		{"/idioma/{value}", FieldLanguage},
		{"/codigo/{value}", FieldCode},
	} {
		field := route.field
		sub.HandleFunc(route.path, func(w http.ResponseWriter, req *http.Request) {
			c, err := svc.Find(req.Context(), field, mux.Vars(req)["value"])
			if err != nil {
				writeFailure(w, "find country by "+string(field), err)
				return
			}
			writeOptional(w, c)
		}).Methods("GET")
	}

	sub.HandleFunc("/id/{id:[0-9]+}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
		if err != nil {
			writeValidationError(w, "Id de país inválido: "+mux.Vars(req)["id"])
			return
		}
		c, err := svc.FindByID(req.Context(), id)
		if err != nil {
			writeFailure(w, "find country by id", err)
			return
		}
		writeOptional(w, c)
	}).Methods("GET")

	sub.HandleFunc("/actualizar/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
		if err != nil {
			writeValidationError(w, "Id de país inválido: "+mux.Vars(req)["id"])
			return
		}
		var candidate Country
		if err := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes)).Decode(&candidate); err != nil {
			writeValidationError(w, "Cuerpo de la solicitud inválido: "+err.Error())
			return
		}
		c, err := svc.Update(req.Context(), id, candidate)
		if err != nil {
			writeFailure(w, "update country", err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}).Methods("PUT")

	sub.HandleFunc("/eliminar/nombre/{nombre}", func(w http.ResponseWriter, req *http.Request) {
		if err := svc.DeleteByName(req.Context(), mux.Vars(req)["nombre"]); err != nil {
			writeFailure(w, "delete country by name", err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	sub.HandleFunc("/eliminar/continente/{continente}", func(w http.ResponseWriter, req *http.Request) {
		if _, err := svc.DeleteByContinent(req.Context(), mux.Vars(req)["continente"]); err != nil {
			writeFailure(w, "delete countries by continent", err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	sub.HandleFunc("/eliminar/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
		if err != nil {
			writeValidationError(w, "Id de país inválido: "+mux.Vars(req)["id"])
			return
		}
		if err := svc.Delete(req.Context(), id); err != nil {
			writeFailure(w, "delete country", err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	sub.HandleFunc("/estado", func(w http.ResponseWriter, req *http.Request) {
		sum, err := svc.Summary(req.Context())
		if err != nil {
			writeFailure(w, "status", err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}).Methods("GET")

	sub.HandleFunc("/resumen/imagen", func(w http.ResponseWriter, req *http.Request) {
		if imagePath == "" {
			writeError(w, http.StatusNotFound, "Summary image not found", nil)
			return
		}
		if _, err := os.Stat(imagePath); err != nil {
			writeError(w, http.StatusNotFound, "Summary image not found", nil)
			return
		}
		http.ServeFile(w, req, imagePath)
	}).Methods("GET")
}
