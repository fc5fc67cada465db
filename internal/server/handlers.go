package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SeamusWaldron/cuberobot/internal/analysis"
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
	"github.com/SeamusWaldron/cuberobot/internal/simulate"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

// CompileRequest is the body of POST /api/compile.
type CompileRequest struct {
	Solution string `json:"solution"`
	// Notation is "solver" (default) or "standard".
	Notation string `json:"notation,omitempty"`
	Save     bool   `json:"save,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// StepView is one compiled instruction in an API response.
type StepView struct {
	Index      int         `json:"index"`
	Token      string      `json:"token"`
	Commands   string      `json:"commands"`
	Primitives []string    `json:"primitives"`
	End        robot.State `json:"end"`
}

// CompileResponse is the result of POST /api/compile.
type CompileResponse struct {
	Solution compiler.Solution         `json:"solution"`
	Commands string                    `json:"commands"`
	Groups   []string                  `json:"groups"`
	Steps    []StepView                `json:"steps"`
	Final    robot.State               `json:"final"`
	Summary  analysis.ProgramSummary   `json:"summary"`
	Costs    []analysis.StepCost       `json:"costs"`
	Profile  *analysis.MovementProfile `json:"profile"`
	RunID    string                    `json:"run_id,omitempty"`
}

// VerifyRequest is the body of POST /api/verify.
type VerifyRequest struct {
	Commands string `json:"commands"`
	// Scramble, when set, is applied to a solved cube before the replay.
	Scramble string `json:"scramble,omitempty"`
}

// NewCompileResponse describes prog.
func NewCompileResponse(prog *compiler.Program) CompileResponse {
	resp := CompileResponse{
		Solution: prog.Solution,
		Commands: prog.Commands(),
		Groups:   prog.Groups(),
		Steps:    make([]StepView, len(prog.Steps)),
		Final:    prog.Final,
		Summary:  analysis.Summarize(prog),
		Costs:    analysis.Costs(prog),
		Profile:  analysis.AnalyzeMovementProfile(prog.Solution),
	}
	for i, step := range prog.Steps {
		prims := make([]string, len(step.Actions))
		for j, a := range step.Actions {
			prims[j] = a.Primitive.String()
		}
		resp.Steps[i] = StepView{
			Index:      step.Index,
			Token:      step.Instruction.Token(),
			Commands:   step.Commands(),
			Primitives: prims,
			End:        step.End,
		}
	}
	return resp
}

func (s *Server) handleCompile(c *gin.Context) {
	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	sol, err := notation.Parse(req.Solution, req.Notation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prog, err := compiler.Run(sol, robot.Initial)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := NewCompileResponse(prog)

	if req.Save {
		if s.db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not configured"})
			return
		}
		run, err := storage.SaveProgram(s.db, prog, req.Notes)
		if err != nil {
			log.Printf("[API] Failed to save run: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save run"})
			return
		}
		resp.RunID = run.RunID
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleVerify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if req.Scramble == "" {
		rep, err := simulate.Decompile(req.Commands)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rep)
		return
	}

	scramble, err := compiler.ParseSolution(req.Scramble)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := simulate.Verify(scramble, req.Commands)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleOrientations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"home":         orientation.Home,
		"orientations": orientation.Table(),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 20
	}

	runs, err := s.runs.List(limit)
	if err != nil {
		log.Printf("[API] Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

func (s *Server) handleGetRun(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"run":   run,
		"steps": steps,
	})
}
