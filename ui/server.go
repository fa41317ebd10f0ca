package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gobalance/adapters/jsonfile"
	"gobalance/adapters/postgres"
	"gobalance/app"
	"gobalance/domain/core"
	"gobalance/domain/session"
	"gobalance/internal/distribution"
	"gobalance/internal/render"
)

// Server exposes the balance reports over HTTP: JSON for tooling, an
// HTML rendering for browsers, and the archived run history when a
// report repository is configured.
type Server struct {
	router       *gin.Engine
	service      *app.ReportService
	loader       *jsonfile.Loader
	archive      *postgres.ReportRepository // nil when archiving is disabled
	historyLimit int
}

// NewServer creates the report server. archive may be nil.
func NewServer(service *app.ReportService, loader *jsonfile.Loader, archive *postgres.ReportRepository, historyLimit int) *Server {
	s := &Server{
		router:       gin.Default(),
		service:      service,
		loader:       loader,
		archive:      archive,
		historyLimit: historyLimit,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.GET("/report", s.handleReport)
		api.GET("/report/html", s.handleReportHTML)
		api.GET("/distributions", s.handleDistributions)
		api.GET("/distributions/latest", s.handleLatestDistribution)
		api.GET("/history", s.handleHistory)
		api.GET("/archive/:id", s.handleArchivedReport)
	}
}

// Run starts the server on the given port.
func (s *Server) Run(port string) error {
	log.Printf("report server listening on :%s", port)
	return s.router.Run(":" + port)
}

// handleReport loads the current results directory, assembles the
// report and returns it as JSON with full numeric precision.
func (s *Server) handleReport(c *gin.Context) {
	records, skippedFiles, err := s.loader.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, skip := range skippedFiles {
		log.Printf("skipping results file %s: %s", skip.Path, skip.Reason)
	}

	report := s.service.Assemble(records)
	c.JSON(http.StatusOK, report)
}

// handleReportHTML renders the markdown report as HTML.
func (s *Server) handleReportHTML(c *gin.Context) {
	records, _, err := s.loader.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report := s.service.Assemble(records)
	c.Data(http.StatusOK, "text/html; charset=utf-8", render.HTML(report))
}

// handleDistributions returns per-game move and time distributions for
// every results file that carries per-game data.
func (s *Server) handleDistributions(c *gin.Context) {
	games, err := s.loader.LoadGames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make(map[string]distribution.GameDistributions, len(games))
	for source, perGame := range games {
		out[source.String()] = distribution.FromGames(perGame)
	}
	c.JSON(http.StatusOK, out)
}

// handleLatestDistribution returns distributions for the most recent
// results file only.
func (s *Server) handleLatestDistribution(c *gin.Context) {
	record, games, err := s.loader.LoadLatest()
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsNotFoundError(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if len(games) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "latest results file has no per-game data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":        record.Source,
		"config_key":    record.ConfigKey,
		"distributions": distribution.FromGames(games),
	})
}

// handleArchivedReport loads a previously archived report by ID.
func (s *Server) handleArchivedReport(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive not configured"})
		return
	}

	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.archive.Get(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsNotFoundError(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleHistory returns the most recent archived runs for one
// configuration key (?key=...).
func (s *Server) handleHistory(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive not configured"})
		return
	}

	key := session.ConfigKey(c.Query("key"))
	if key.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key query parameter is required"})
		return
	}

	runs, err := s.archive.RecentRuns(c.Request.Context(), key, s.historyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config_key": key, "runs": runs})
}
