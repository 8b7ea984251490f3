package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
	"github.com/irodasoft/docuflow_app/internal/middleware"
)

// teamHandler handles HTTP requests related to approver teams.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
}

func newTeamHandler(teamService portssvc.TeamSvcFacade) *teamHandler {
	return &teamHandler{teamService: teamService}
}

// registerTeamRoutes sets up the approver team routes.
func registerTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade) {
	h := newTeamHandler(teamService)

	teams := rg.Group("/companies/:companyID/teams")
	{
		teams.POST("", h.createTeam)
		teams.GET("", h.listTeams)
	}
	rg.POST("/teams/:teamID/members", h.addTeamMember)
}

// createTeam godoc
// @Summary Create an approver team
// @Description Creates a team that receives documents for one role category.
// @Tags teams
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param team body dto.CreateTeamRequest true "Team data"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/teams [post]
func (h *teamHandler) createTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTeam", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
			return
		}
		logger.Error("Failed to create team", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// listTeams godoc
// @Summary List approver teams of a company
// @Tags teams
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.ListTeamsResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/teams [get]
func (h *teamHandler) listTeams(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	teams, err := h.teamService.ListTeams(c.Request.Context(), companyID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
			return
		}
		logger.Error("Failed to list teams", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list teams"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTeamsResponse(teams))
}

// addTeamMember godoc
// @Summary Add a member to an approver team
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param member body dto.AddTeamMemberRequest true "Member data"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teams/{teamID}/members [post]
func (h *teamHandler) addTeamMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("teamID")

	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addTeamMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.teamService.AddTeamMember(c.Request.Context(), teamID, req, addingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User or team not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to add team member",
				slog.String("error", err.Error()),
				slog.String("team_id", teamID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add team member"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
