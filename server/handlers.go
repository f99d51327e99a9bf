package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dekarrin/mathscript"
	"github.com/dekarrin/mathscript/history"
	"github.com/dekarrin/mathscript/internal/version"
	"github.com/dekarrin/mathscript/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EvaluateRequest is the JSON body of POST /evaluate.
type EvaluateRequest struct {
	Expression string            `json:"expression"`
	Mode       string            `json:"mode"`
	Vars       map[string]string `json:"vars"`
}

// EvaluateResponse is the JSON body returned from a successful POST
// /evaluate.
type EvaluateResponse struct {
	Result string `json:"result"`
}

// TokenRequest is the JSON body of POST /token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse is the JSON body returned from a successful POST /token.
type TokenResponse struct {
	Token string `json:"token"`
}

// HistoryEntryModel is the over-the-wire representation of a history.Entry.
type HistoryEntryModel struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Mode   string `json:"mode"`
	Input  string `json:"input"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func entryToModel(e history.Entry) HistoryEntryModel {
	return HistoryEntryModel{
		ID:     e.ID.String(),
		Time:   e.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Mode:   e.Mode,
		Input:  e.Input,
		Result: e.Result,
		Error:  e.Err,
	}
}

// handleCreateToken exchanges a valid API key for a short-lived JWT used to
// call the rest of the API.
func (s *Server) handleCreateToken() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		var body TokenRequest
		if err := parseJSON(req, &body); err != nil {
			jsonBadRequest(err.Error(), err.Error()).writeResponse(w, req)
			return
		}
		if body.APIKey == "" {
			jsonBadRequest("api_key: property is empty or missing from request", "empty api_key").writeResponse(w, req)
			return
		}

		label, err := authenticateAPIKey(s.apiKeys, body.APIKey)
		if err != nil {
			if errors.Is(err, serr.ErrBadCredentials) {
				jsonUnauthorized(serr.ErrBadCredentials.Error(), "bad api key").writeResponse(w, req)
				return
			}
			jsonInternalServerError(err.Error()).writeResponse(w, req)
			return
		}

		tok, err := generateJWT(s.jwtSecret, label)
		if err != nil {
			jsonInternalServerError("could not generate JWT: %s", err.Error()).writeResponse(w, req)
			return
		}

		jsonCreated(TokenResponse{Token: tok}, "caller %q issued token", label).writeResponse(w, req)
	}
}

// handleEvaluate parses and evaluates an expression, logging the attempt to
// history regardless of whether it succeeded.
func (s *Server) handleEvaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		var body EvaluateRequest
		if err := parseJSON(req, &body); err != nil {
			jsonBadRequest(err.Error(), err.Error()).writeResponse(w, req)
			return
		}
		if body.Expression == "" {
			jsonBadRequest("expression: property is empty or missing from request", "empty expression").writeResponse(w, req)
			return
		}

		mode := s.defaultMode
		modeStr := body.Mode
		if modeStr != "" {
			parsed, err := parseMode(modeStr)
			if err != nil {
				jsonBadRequest(err.Error(), err.Error()).writeResponse(w, req)
				return
			}
			mode = parsed
		} else if mode == mathscript.Degrees {
			modeStr = "degrees"
		} else {
			modeStr = "radians"
		}

		vars := make(mathscript.Env, len(body.Vars))
		for name, text := range body.Vars {
			val, err := mathscript.Parse(text)
			if err != nil {
				jsonBadRequest(fmt.Sprintf("vars[%s]: %s", name, err.Error()), "bad var %q: %s", name, err.Error()).writeResponse(w, req)
				return
			}
			vars[name] = val
		}

		entry := history.Entry{Mode: modeStr, Input: body.Expression}

		result, err := mathscript.Evaluate(body.Expression, mode, vars)
		if err != nil {
			entry.Err = err.Error()
			if _, logErr := s.history.Log(req.Context(), entry); logErr != nil {
				jsonInternalServerError("log failed evaluation: %s", logErr.Error()).writeResponse(w, req)
				return
			}
			jsonBadRequest(err.Error(), "evaluate %q: %s", body.Expression, err.Error()).writeResponse(w, req)
			return
		}

		entry.Result = result.String()
		logged, err := s.history.Log(req.Context(), entry)
		if err != nil {
			jsonInternalServerError("log evaluation: %s", err.Error()).writeResponse(w, req)
			return
		}

		jsonCreated(EvaluateResponse{Result: logged.Result}, "evaluated %q -> %q", body.Expression, logged.Result).writeResponse(w, req)
	}
}

// handleHistoryList returns recent history entries, most recent first.
// The "limit" query parameter bounds how many are returned.
func (s *Server) handleHistoryList() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		limit := 0
		if l := req.URL.Query().Get("limit"); l != "" {
			if _, err := fmt.Sscanf(l, "%d", &limit); err != nil {
				jsonBadRequest("limit: must be an integer", "bad limit %q", l).writeResponse(w, req)
				return
			}
		}

		entries, err := s.history.Recent(req.Context(), limit)
		if err != nil {
			jsonInternalServerError(err.Error()).writeResponse(w, req)
			return
		}

		resp := make([]HistoryEntryModel, len(entries))
		for i := range entries {
			resp[i] = entryToModel(entries[i])
		}

		jsonOK(resp, "listed %d history entries", len(resp)).writeResponse(w, req)
	}
}

// handleHistoryGet returns a single history entry by ID.
func (s *Server) handleHistoryGet() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		idStr := chi.URLParam(req, "id")
		id, err := uuid.Parse(idStr)
		if err != nil {
			jsonBadRequest("id: not a valid UUID", "bad id %q", idStr).writeResponse(w, req)
			return
		}

		entry, err := s.history.Get(req.Context(), id)
		if err != nil {
			if errors.Is(err, history.ErrNotFound) {
				jsonNotFound("entry %s not found", idStr).writeResponse(w, req)
				return
			}
			jsonInternalServerError(err.Error()).writeResponse(w, req)
			return
		}

		jsonOK(entryToModel(entry), "got history entry %s", idStr).writeResponse(w, req)
	}
}

// InfoResponse is the JSON body returned from GET /info.
type InfoResponse struct {
	Version string `json:"version"`
}

func (s *Server) handleInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		jsonOK(InfoResponse{Version: version.ServerCurrent}, "got API info").writeResponse(w, req)
	}
}

// parseJSON decodes req's body into v, which must be a pointer. On malformed
// JSON it returns an error wrapping serr.ErrBodyUnmarshal so callers can
// distinguish that case with errors.Is.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("%w: %s", serr.ErrBodyUnmarshal, err.Error())
	}
	return nil
}
