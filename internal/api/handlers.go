// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ManuGH/gameconf/internal/fsutil"
	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 4 << 20

var errBadRequest = errors.New("bad request")

// configRequest is the body of the read and write endpoints.
type configRequest struct {
	ServerPath string        `json:"server_path"`
	Format     string        `json:"format"`
	Data       schema.Record `json:"data"`
}

func (s *Server) handleListConfigs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Catalog.List())
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	doc, err := s.cfg.Catalog.Document(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleReadConfig(w http.ResponseWriter, r *http.Request) {
	sch, req, serverPath, ok := s.prepare(w, r)
	if !ok {
		return
	}
	rec, err := s.cfg.Store.Load(r.Context(), serverPath, sch, req.Format)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleWriteConfig(w http.ResponseWriter, r *http.Request) {
	sch, req, serverPath, ok := s.prepare(w, r)
	if !ok {
		return
	}
	if req.Data == nil {
		writeError(w, fmt.Errorf("%w: data is required", errBadRequest))
		return
	}
	if err := s.cfg.Store.Save(r.Context(), serverPath, sch, req.Data, req.Format); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// prepare loads the schema named in the URL, decodes the body and confines
// its server path. On failure the response has been written.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (*schema.Schema, configRequest, string, bool) {
	var req configRequest

	id := chi.URLParam(r, "id")
	sch, err := s.cfg.Catalog.Get(id)
	if err != nil {
		writeError(w, err)
		return nil, req, "", false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode body: %v", errBadRequest, err))
		return nil, req, "", false
	}

	serverPath, err := fsutil.Confine(s.cfg.Root, req.ServerPath)
	if err != nil {
		logger := xglog.WithContext(r.Context(), s.logger)
		logger.Warn().Err(err).
			Str(xglog.FieldEvent, "api.path_rejected").
			Str(xglog.FieldSchemaID, id).
			Str(xglog.FieldServerPath, req.ServerPath).
			Msg("server path rejected")
		writeError(w, err)
		return nil, req, "", false
	}
	return sch, req, serverPath, true
}
