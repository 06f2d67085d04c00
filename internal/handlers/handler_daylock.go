package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
)

// dayLockHandler handles HTTP requests related to accounting day locks.
type dayLockHandler struct {
	dayLockService portssvc.DayLockSvcFacade
}

// newDayLockHandler creates a new dayLockHandler.
func newDayLockHandler(dayLockService portssvc.DayLockSvcFacade) *dayLockHandler {
	return &dayLockHandler{
		dayLockService: dayLockService,
	}
}

// registerDayLockRoutes wires the day lock endpoints into the v1 group.
func registerDayLockRoutes(rg *gin.RouterGroup, dayLockService portssvc.DayLockSvcFacade) {
	h := newDayLockHandler(dayLockService)

	dayLocks := rg.Group("/day-locks")
	{
		dayLocks.GET("", h.listDayLocks)
		dayLocks.POST("/close-previous-day", h.closePreviousDay)
		dayLocks.GET("/:day", h.getDayLock)
		dayLocks.POST("/:day/lock", h.lockDay)
		dayLocks.POST("/:day/unlock", h.unlockDay)
	}
}

// parseDay reads the :day path parameter as a calendar date.
func parseDay(c *gin.Context, logger *slog.Logger) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", c.Param("day"), time.UTC)
	if err != nil {
		logger.Warn("Invalid day parameter", slog.String("day", c.Param("day")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Day must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

func (h *dayLockHandler) getDayLock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	day, ok := parseDay(c, logger)
	if !ok {
		return
	}

	lock, err := h.dayLockService.GetDayLock(c.Request.Context(), day)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve day lock")
		return
	}

	c.JSON(http.StatusOK, dto.ToDayLockResponse(lock))
}

func (h *dayLockHandler) listDayLocks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListDayLocksParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listDayLocks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.dayLockService.ListDayLocks(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list day locks")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *dayLockHandler) lockDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	day, ok := parseDay(c, logger)
	if !ok {
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	lock, err := h.dayLockService.Lock(c.Request.Context(), day, &actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to lock day")
		return
	}

	logger.Info("Day locked", slog.String("day", lock.Day.Format("2006-01-02")))
	c.JSON(http.StatusOK, dto.ToDayLockResponse(lock))
}

func (h *dayLockHandler) unlockDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	day, ok := parseDay(c, logger)
	if !ok {
		return
	}

	req := dto.UnlockDayRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for unlockDay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	lock, err := h.dayLockService.Unlock(c.Request.Context(), day, actorID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to unlock day")
		return
	}

	logger.Info("Day unlocked",
		slog.String("day", lock.Day.Format("2006-01-02")),
		slog.String("reason", req.Reason))
	c.JSON(http.StatusOK, dto.ToDayLockResponse(lock))
}

func (h *dayLockHandler) closePreviousDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	lock, err := h.dayLockService.ClosePreviousDay(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close previous day")
		return
	}

	logger.Info("Previous day closed", slog.String("day", lock.Day.Format("2006-01-02")))
	c.JSON(http.StatusOK, dto.ToDayLockResponse(lock))
}
