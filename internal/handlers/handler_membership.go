package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
)

// membershipHandler handles HTTP requests related to member contribution state.
type membershipHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

// newMembershipHandler creates a new membershipHandler.
func newMembershipHandler(membershipService portssvc.MembershipSvcFacade) *membershipHandler {
	return &membershipHandler{
		membershipService: membershipService,
	}
}

// registerMembershipRoutes wires the member endpoints into the v1 group.
func registerMembershipRoutes(rg *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := newMembershipHandler(membershipService)

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("/:memberID", h.getMember)
		members.GET("/:memberID/status", h.getStatus)
		members.GET("/:memberID/timeline", h.getTimeline)
		members.POST("/:memberID/contributions", h.applyContribution)
		members.PUT("/:memberID/override", h.setOverride)
	}
}

func (h *membershipHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateMemberRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	member, err := h.membershipService.CreateMember(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create member")
		return
	}

	logger.Info("Member created", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

func (h *membershipHandler) getMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	member, err := h.membershipService.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve member")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *membershipHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	params := dto.RefreshStatusParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for getStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	result, err := h.membershipService.RefreshStatus(c.Request.Context(), memberID, params.ReferenceTime)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to refresh member status")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusResponse(result))
}

func (h *membershipHandler) getTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	events, err := h.membershipService.GetTimeline(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build member timeline")
		return
	}

	c.JSON(http.StatusOK, dto.TimelineResponse{Events: events})
}

func (h *membershipHandler) applyContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	req := dto.ApplyContributionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for applyContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	postedAt := time.Now().UTC()
	if req.PostedAt != nil {
		postedAt = *req.PostedAt
	}

	member, err := h.membershipService.ApplyContribution(c.Request.Context(), memberID, req.Amount, postedAt, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to apply contribution")
		return
	}

	logger.Info("Contribution applied",
		slog.String("member_id", memberID),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *membershipHandler) setOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	req := dto.SetOverrideRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for setOverride", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	var value *domain.MembershipStatus
	if req.Value != nil {
		v := domain.MembershipStatus(*req.Value)
		value = &v
	}

	member, err := h.membershipService.SetOverride(c.Request.Context(), memberID, req.Enabled, value, req.Reason, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to set status override")
		return
	}

	logger.Info("Status override updated",
		slog.String("member_id", memberID),
		slog.Bool("enabled", req.Enabled))
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}
