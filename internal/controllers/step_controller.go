package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"focusflow-be/internal/models"
	"focusflow-be/internal/repository"
	"focusflow-be/internal/service"
)

type StepController struct {
	stepService service.StepService
}

func NewStepController(stepService service.StepService) *StepController {
	return &StepController{
		stepService: stepService,
	}
}

// Create handles POST /tasks/:taskId/steps
func (sc *StepController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("taskId")

	var req models.CreateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	step, err := sc.stepService.CreateStep(userID, taskID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create step",
		})
		return
	}

	c.JSON(http.StatusCreated, step)
}

// List handles GET /tasks/:taskId/steps
func (sc *StepController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("taskId")

	steps, err := sc.stepService.GetTaskSteps(userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load steps",
		})
		return
	}

	c.JSON(http.StatusOK, steps)
}

// Update handles PUT /tasks/:taskId/steps/:stepId
func (sc *StepController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("taskId")
	stepID := c.Param("stepId")

	var req models.UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	step, err := sc.stepService.UpdateStep(userID, taskID, stepID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Step not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update step",
		})
		return
	}

	c.JSON(http.StatusOK, step)
}

// Delete handles DELETE /tasks/:taskId/steps/:stepId
func (sc *StepController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("taskId")
	stepID := c.Param("stepId")

	if err := sc.stepService.DeleteStep(userID, taskID, stepID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Step not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete step",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Step deleted",
	})
}
