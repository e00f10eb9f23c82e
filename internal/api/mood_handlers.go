package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/service"
)

func moodIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("moodId"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: moodId must be an integer", internal.ErrInvalidInput)
	}
	return id, nil
}

func PostMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AddMoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), fmt.Errorf("%w: %v", internal.ErrInvalidInput, err), "Invalid JSON")
			return
		}

		mood, err := service.AddMood(c.Request.Context(), app.Store(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to add mood")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusCreated, mood, nil)
	}
}

func PutMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		moodID, err := moodIDParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, "Invalid mood id")
			return
		}

		var req service.UpdateMoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), fmt.Errorf("%w: %v", internal.ErrInvalidInput, err), "Invalid JSON")
			return
		}

		mood, err := service.UpdateMood(c.Request.Context(), app.Store(), moodID, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to update mood")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, mood, nil)
	}
}

func DeleteMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		moodID, err := moodIDParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, "Invalid mood id")
			return
		}

		var req service.DeleteMoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), fmt.Errorf("%w: %v", internal.ErrInvalidInput, err), "Invalid JSON")
			return
		}

		if err := service.DeleteMood(c.Request.Context(), app.Store(), moodID, &req); err != nil {
			HandleError(c, app.Logger(), err, "Failed to delete mood")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, nil, nil)
	}
}

func GetMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		moodID, err := moodIDParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, "Invalid mood id")
			return
		}

		mood, err := service.GetMood(c.Request.Context(), app.Store(), moodID)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch mood")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, mood, nil)
	}
}

// GetMoods lists the authenticated user's moods, newest first.
func GetMoods(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		moods, err := service.ListMoods(c.Request.Context(), app.Store(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch moods")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, moods, nil)
	}
}
