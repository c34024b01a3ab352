package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/energyflow/internal/board"
	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/planner"
)

type quizRequest struct {
	Answers []models.QuizAnswer `json:"answers"`
}

type scheduleRequest struct {
	Tasks  []models.TaskInput `json:"tasks"`
	Window *models.Window     `json:"window,omitempty"`
	Save   bool               `json:"save"`
}

type addTaskRequest struct {
	Text string `json:"text"`
}

type moveTaskRequest struct {
	Zone  models.Zone `json:"zone"`
	Index *int        `json:"index,omitempty"`
}

type handlers struct {
	svc *planner.Service
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func (h *handlers) health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"status": "ok"}, map[string]any{"version": constants.Version})
}

func (h *handlers) quiz(c *gin.Context) {
	questions := h.svc.Questions()
	success(c, http.StatusOK, questions, map[string]any{"count": len(questions)})
}

func (h *handlers) submitProfile(c *gin.Context) {
	var req quizRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.svc.SubmitQuiz(req.Answers)
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusCreated, p, nil)
}

func (h *handlers) getProfile(c *gin.Context) {
	p, err := h.svc.Profile()
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, p, nil)
}

func (h *handlers) profileHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		fail(c, http.StatusBadRequest, CodeBadRequest, "limit must be a positive integer")
		return
	}
	history, err := h.svc.History(limit)
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, history, map[string]any{"count": len(history)})
}

func (h *handlers) curve(c *gin.Context) {
	jitter, _ := strconv.ParseBool(c.DefaultQuery("jitter", "false"))
	points, err := h.svc.Curve(jitter)
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, points, map[string]any{"jitter": jitter})
}

func (h *handlers) zone(c *gin.Context) {
	now := h.svc.Now()
	success(c, http.StatusOK, energy.CurrentZone(now), map[string]any{"time": now.Format(constants.TimeFormat)})
}

func (h *handlers) schedule(c *gin.Context) {
	var req scheduleRequest
	if !bind(c, &req) {
		return
	}

	var window models.Window
	if req.Window != nil {
		window = *req.Window
	} else {
		var err error
		if window, err = h.svc.DefaultWindow(""); err != nil {
			handleError(c, err)
			return
		}
	}

	plan, err := h.svc.Plan(req.Tasks, window)
	if err != nil {
		handleError(c, err)
		return
	}

	meta := map[string]any{
		"scheduled":   plan.Scheduled(),
		"unscheduled": len(plan.Tasks) - plan.Scheduled(),
		"saved":       false,
	}
	if req.Save {
		if _, err := h.svc.SaveToBoard(plan.Tasks); err != nil {
			handleError(c, err)
			return
		}
		meta["saved"] = true
	}
	success(c, http.StatusOK, plan, meta)
}

func (h *handlers) getBoard(c *gin.Context) {
	b, err := h.svc.Board()
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, b, map[string]any{"counts": board.Counts(&b)})
}

func (h *handlers) addTask(c *gin.Context) {
	zone, err := models.ParseZone(c.Param("zone"))
	if err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var req addTaskRequest
	if !bind(c, &req) {
		return
	}
	task, err := h.svc.AddTask(zone, req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusCreated, task, map[string]any{"zone": zone})
}

func (h *handlers) toggleTask(c *gin.Context) {
	task, err := h.svc.ToggleTask(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, task, nil)
}

func (h *handlers) moveTask(c *gin.Context) {
	var req moveTaskRequest
	if !bind(c, &req) {
		return
	}
	if _, err := models.ParseZone(string(req.Zone)); err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	index := -1
	if req.Index != nil {
		index = *req.Index
	}
	b, err := h.svc.MoveTask(c.Param("id"), req.Zone, index)
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, b, nil)
}

func (h *handlers) deleteTask(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) clearCompleted(c *gin.Context) {
	n, err := h.svc.ClearCompleted()
	if err != nil {
		handleError(c, err)
		return
	}
	success(c, http.StatusOK, nil, map[string]any{"removed": n, "message": fmt.Sprintf("removed %d completed tasks", n)})
}
