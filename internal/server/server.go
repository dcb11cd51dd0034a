// Package server is the HTTP surface: generated asset endpoints, the
// GraphQL endpoint and a health check.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/marius851000/spritecollab-srv/internal/assets"
	"github.com/marius851000/spritecollab-srv/internal/collab"
	"github.com/marius851000/spritecollab-srv/internal/config"
	"github.com/marius851000/spritecollab-srv/internal/datafiles"
)

// DataSource provides the current data snapshot.
type DataSource interface {
	Data() *collab.Data
}

type Server struct {
	source  DataSource
	repoDir string
	httpSrv *http.Server
}

func New(addr string, source DataSource, repoDir string, graphqlHandler http.Handler) *Server {
	s := &Server{source: source, repoDir: repoDir}

	r := mux.NewRouter()
	r.Handle("/graphql", graphqlHandler)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.PathPrefix("/assets/").HandlerFunc(s.handleAsset)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

func (s *Server) Start() {
	go func() {
		config.Logger.Infof("Listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatalf("HTTP server failed: %v", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	monsterID, formPath, asset, ok := assets.MatchPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	d := s.source.Data()
	group, ok := d.Tracker.Form(monsterID, formPath)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	var contentType string
	var err error
	switch asset.Kind {
	case assets.PortraitSheet, assets.PortraitRecolorSheet:
		if group.PortraitComplete == datafiles.PhaseIncomplete {
			http.NotFound(w, r)
			return
		}
		dir := assets.PortraitDir(s.repoDir, monsterID, formPath)
		contentType = "image/png"
		if asset.Kind == assets.PortraitSheet {
			err = assets.BuildPortraitSheet(&buf, dir, d.SpriteConfig)
		} else {
			err = assets.BuildPortraitRecolorSheet(&buf, dir, d.SpriteConfig)
		}
	case assets.SpriteZip, assets.SpriteRecolorSheet:
		if group.SpriteComplete == datafiles.PhaseIncomplete {
			http.NotFound(w, r)
			return
		}
		dir := assets.SpriteDir(s.repoDir, monsterID, formPath)
		if asset.Kind == assets.SpriteZip {
			contentType = "application/zip"
			w.Header().Set("Content-Disposition", `attachment; filename="sprites.zip"`)
			err = assets.BuildSpriteZip(&buf, dir)
		} else {
			contentType = "image/png"
			err = assets.BuildSpriteRecolorSheet(&buf, dir)
		}
	default:
		http.NotFound(w, r)
		return
	}

	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		config.Logger.Errorf("Failed to build asset %s: %v", r.URL.Path, err)
		http.Error(w, "failed to build asset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}
