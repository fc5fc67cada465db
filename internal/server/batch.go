package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SeamusWaldron/cuberobot/internal/analysis"
	"github.com/SeamusWaldron/cuberobot/internal/batch"
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/export"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
)

// maxBatch caps the number of solutions in one batch request.
const maxBatch = 1000

// BatchRequest is the body of POST /api/batch.
type BatchRequest struct {
	Solutions []string `json:"solutions"`
	Notation  string   `json:"notation,omitempty"`
}

// BatchItem is the outcome for one solution in a batch.
type BatchItem struct {
	Solution string `json:"solution"`
	Commands string `json:"commands,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchResponse is the result of POST /api/batch.
type BatchResponse struct {
	Results []BatchItem            `json:"results"`
	Failed  int                    `json:"failed"`
	Summary *analysis.BatchSummary `json:"summary,omitempty"`
}

func (s *Server) handleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Solutions) == 0 || len(req.Solutions) > maxBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solutions must hold 1 to " + strconv.Itoa(maxBatch) + " entries"})
		return
	}

	entries := make([]batch.Entry, len(req.Solutions))
	for i, text := range req.Solutions {
		entries[i] = batch.Entry{Line: i + 1, Text: text}
	}
	parse := func(text string) (compiler.Solution, error) {
		return notation.Parse(text, req.Notation)
	}

	results, err := batch.Compile(c.Request.Context(), entries, parse, 0)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	resp := BatchResponse{
		Results: make([]BatchItem, len(results)),
		Failed:  batch.Failed(results),
	}
	for i, r := range results {
		resp.Results[i].Solution = r.Text
		if r.Err != nil {
			resp.Results[i].Error = r.Err.Error()
			continue
		}
		resp.Results[i].Commands = r.Program.Commands()
	}
	if sum, err := batch.Summarize(results); err == nil {
		resp.Summary = &sum
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRunStats(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not configured"})
		return
	}

	runs, err := s.runs.List(0)
	if err != nil {
		log.Printf("[API] Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}

	samples := make([]analysis.Sample, len(runs))
	for i, r := range runs {
		samples[i] = analysis.Sample{Instructions: r.InstructionCount, Primitives: r.PrimitiveCount}
	}
	sum, err := analysis.Aggregate(samples)
	if errors.Is(err, analysis.ErrNoSamples) {
		c.JSON(http.StatusOK, gin.H{"solutions": 0})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) handleRunReport(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not configured"})
		return
	}

	run, err := s.runs.Get(c.Param("id"))
	if err != nil {
		log.Printf("[API] Failed to get run: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	steps, err := s.steps.GetByRun(run.RunID)
	if err != nil {
		log.Printf("[API] Failed to get steps: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get steps"})
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "html")) {
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", export.HTML(run, steps))
	case "md", "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.Markdown(run, steps)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be html or md"})
	}
}
