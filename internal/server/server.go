// Package server exposes floor generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/entity"
	"github.com/samdwyer/floorgen/internal/gamedata"
	"github.com/samdwyer/floorgen/internal/generator"
	"github.com/samdwyer/floorgen/internal/rng"
)

// FloorSource supplies floors. *store.Loader implements it.
type FloorSource interface {
	Load(ctx context.Context, req generator.Request) (*generator.Floor, bool, error)
}

// Server answers floor requests against a catalog.
type Server struct {
	catalog *gamedata.Catalog
	source  FloorSource
	logger  *slog.Logger
	// Override adjusts catalog floor properties before generation.
	Override func(dungeon.FloorProperties) (dungeon.FloorProperties, error)
}

// New creates a server.
func New(c *gamedata.Catalog, src FloorSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{catalog: c, source: src, logger: logger}
}

// FloorResponse is the body of GET /floor.
type FloorResponse struct {
	Dungeon  string           `json:"dungeon"`
	Floor    int              `json:"floor"`
	Seed     uint64           `json:"seed"`
	Cached   bool             `json:"cached"`
	Result   *generator.Floor `json:"result"`
	Entities *entity.Table    `json:"entities,omitempty"`
	Map      []string         `json:"map"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /floor", s.handleFloor)
	mux.HandleFunc("GET /dungeons", s.handleDungeons)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func (s *Server) handleFloor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("dungeon")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("dungeon is required"))
		return
	}
	floor := 1
	if v := q.Get("floor"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("floor must be an integer"))
			return
		}
		floor = n
	}
	var seed uint64
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("seed must be an unsigned integer"))
			return
		}
		seed = n
	}

	req, err := s.catalog.Request(id, floor, rng.Seed(id, floor, seed))
	if errors.Is(err, gamedata.ErrUnknownDungeon) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if s.Override != nil {
		if req.Properties, err = s.Override(req.Properties); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, dungeon.ErrInvalidConfig) {
				status = http.StatusUnprocessableEntity
			}
			s.writeError(w, status, err)
			return
		}
	}

	f, cached, err := s.source.Load(r.Context(), req)
	if errors.Is(err, dungeon.ErrInvalidConfig) {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		s.logger.Error("floor generation failed", "dungeon", id, "floor", floor, "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := FloorResponse{Dungeon: id, Floor: floor, Seed: seed, Cached: cached, Result: f}
	if q.Get("entities") == "true" {
		f = &generator.Floor{Grid: f.Grid.Clone(), Result: f.Result, Status: f.Status}
		tbl, err := entity.Populate(f, s.catalog, req.Properties, req.Restriction)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.Result = f
		resp.Entities = tbl
	}
	resp.Map = splitLines(f.Grid.String())

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDungeons(w http.ResponseWriter, _ *http.Request) {
	type summary struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Floors int    `json:"floors"`
	}
	var out []summary
	for _, id := range s.catalog.DungeonIDs() {
		d, err := s.catalog.Dungeon(id)
		if err != nil {
			continue
		}
		out = append(out, summary{ID: d.ID, Name: d.Name, Floors: d.Floors})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
