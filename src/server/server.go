// Package server is the hub dashboard: a small HTTP front end over the same
// fleet actions the CLI runs, plus the camera list and last-run state.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"camfleet/src/config"
	"camfleet/src/fleet"
	"camfleet/src/gitrepo"
	"camfleet/src/sshexec"
	"camfleet/src/state"
	"camfleet/src/updater"
)

// Server serves the dashboard and triggers fleet actions.
type Server struct {
	cfg    *config.Config
	runner sshexec.Runner
	store  state.Store
	log    io.Writer
}

// New creates a dashboard server. runner is injectable for tests.
func New(cfg *config.Config, runner sshexec.Runner, log io.Writer) *Server {
	return &Server{
		cfg:    cfg,
		runner: runner,
		store:  state.Store{Dir: cfg.StateDir},
		log:    log,
	}
}

// Router builds the gin engine with all dashboard routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/api/cameras", s.handleCameras)
	r.GET("/api/state", s.handleState)
	r.POST("/api/update", s.handleUpdate)
	r.POST("/api/restart/:name", s.handleRestart)
	return r
}

// Start runs the dashboard until the context is cancelled or a signal
// arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.ServerAddress(),
		Handler:     s.Router(),
		ReadTimeout: 10 * time.Second,
		// Fleet updates run synchronously inside a request, so no
		// write timeout.
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
	case <-sigCh:
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) newUpdater() *updater.Updater {
	return &updater.Updater{
		Runner: s.runner,
		Opts: updater.Options{
			RemoteDir: s.cfg.RemoteRepoDir,
			Service:   s.cfg.Service,
			// The dashboard always reports the whole fleet rather
			// than halting at the first failure.
			StatusLines:     s.cfg.StatusLines,
			ContinueOnError: true,
			CommandTimeout:  s.cfg.CommandTimeout.Std(),
		},
		Log: s.log,
	}
}

func (s *Server) loadCameras(c *gin.Context) ([]fleet.Camera, bool) {
	cams, err := fleet.Load(s.cfg.CamerasFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return cams, true
}

func (s *Server) handleIndex(c *gin.Context) {
	cams, ok := s.loadCameras(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service": s.cfg.Service,
		"cameras": cams,
		"endpoints": gin.H{
			"cameras": "/api/cameras",
			"state":   "/api/state",
			"update":  "POST /api/update",
			"restart": "POST /api/restart/:name",
		},
	})
}

func (s *Server) handleCameras(c *gin.Context) {
	cams, ok := s.loadCameras(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cameras": cams})
}

func (s *Server) handleState(c *gin.Context) {
	lr, err := s.store.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if lr == nil {
		c.JSON(http.StatusOK, gin.H{"ts": nil, "report": nil})
		return
	}
	c.JSON(http.StatusOK, lr)
}

func (s *Server) handleUpdate(c *gin.Context) {
	cams, ok := s.loadCameras(c)
	if !ok {
		return
	}
	ctx, cancel := s.fleetContext(c)
	defer cancel()

	hub := gitrepo.Repo{Dir: s.cfg.HubRepoDir, SSHKeyPath: s.cfg.SSHKeyPath}
	if err := hub.Pull(ctx, s.log); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	rep := s.newUpdater().UpdateAll(ctx, cams)
	s.finishAction(c, rep)
}

func (s *Server) handleRestart(c *gin.Context) {
	cams, ok := s.loadCameras(c)
	if !ok {
		return
	}
	cam, found := fleet.Find(cams, c.Param("name"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown camera: " + c.Param("name")})
		return
	}
	ctx, cancel := s.fleetContext(c)
	defer cancel()

	rep := s.newUpdater().RestartAll(ctx, []fleet.Camera{cam})
	s.finishAction(c, rep)
}

func (s *Server) fleetContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.cfg.FleetTimeout > 0 {
		return context.WithTimeout(c.Request.Context(), s.cfg.FleetTimeout.Std())
	}
	return context.WithCancel(c.Request.Context())
}

func (s *Server) finishAction(c *gin.Context, rep fleet.Report) {
	if err := s.store.Write(rep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if !rep.OK() {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"report": rep})
}
