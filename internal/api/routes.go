package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"
	listapplications "schemesathi/internal/workers/application/list-applications"
	recordapplication "schemesathi/internal/workers/application/record-application"
	updateapplicationstatus "schemesathi/internal/workers/application/update-application-status"
	getuserprofile "schemesathi/internal/workers/profile/get-user-profile"
	saveuserprofile "schemesathi/internal/workers/profile/save-user-profile"
	resolveeligibleschemes "schemesathi/internal/workers/recommendation/resolve-eligible-schemes"
	getschemedetails "schemesathi/internal/workers/schemes/get-scheme-details"
	searchschemes "schemesathi/internal/workers/schemes/search-schemes"
	summarizescheme "schemesathi/internal/workers/schemes/summarize-scheme"

	"github.com/gin-gonic/gin"
)

// maxProfileBody bounds PUT /profile.
const maxProfileBody = 64 << 10

// Citizens may submit a draft, withdraw or appeal. Review outcomes come from the department process.
var citizenStatuses = map[models.ApplicationStatus]bool{
	models.StatusSubmitted: true,
	models.StatusWithdrawn: true,
	models.StatusAppealed:  true,
}

func (s *Server) listSchemes(c *gin.Context) {
	schemes := s.catalog.All()
	c.JSON(http.StatusOK, gin.H{"schemes": schemes, "count": len(schemes)})
}

func (s *Server) searchSchemes(c *gin.Context) {
	input := &searchschemes.Input{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(c, errors.NewValidationError("limit must be a positive integer"))
			return
		}
		input.Limit = n
	}

	out, err := s.handlers.SearchSchemes.Execute(c.Request.Context(), input)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getScheme(c *gin.Context) {
	out, err := s.handlers.SchemeDetails.Execute(c.Request.Context(), &getschemedetails.Input{SchemeID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Scheme)
}

func (s *Server) summarizeScheme(c *gin.Context) {
	out, err := s.handlers.SummarizeScheme.Execute(c.Request.Context(), &summarizescheme.Input{SchemeID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) eligibleSchemes(c *gin.Context) {
	out, err := s.handlers.EligibleSchemes.Execute(c.Request.Context(), &resolveeligibleschemes.Input{UserID: currentUser(c)})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProfile(c *gin.Context) {
	out, err := s.handlers.GetProfile.Execute(c.Request.Context(), &getuserprofile.Input{UserID: currentUser(c)})
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !out.Found {
		s.writeError(c, errors.NewProfileRequiredError(out.UserID))
		return
	}
	c.JSON(http.StatusOK, out.Profile)
}

func (s *Server) saveProfile(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProfileBody+1))
	if err != nil {
		s.writeError(c, errors.NewValidationError("could not read request body"))
		return
	}
	if len(raw) > maxProfileBody {
		s.writeError(c, errors.NewValidationError("profile payload too large"))
		return
	}

	out, err := s.handlers.SaveProfile.Execute(c.Request.Context(), &saveuserprofile.Input{
		UserID:  currentUser(c),
		Profile: json.RawMessage(raw),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listApplications(c *gin.Context) {
	out, err := s.handlers.ListApplications.Execute(c.Request.Context(), &listapplications.Input{UserID: currentUser(c)})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) recordApplication(c *gin.Context) {
	var req struct {
		SchemeID        string                   `json:"schemeId" binding:"required"`
		ApplicationDate string                   `json:"applicationDate"`
		Status          models.ApplicationStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.NewValidationError(err.Error()))
		return
	}

	out, err := s.handlers.RecordApplication.Execute(c.Request.Context(), &recordapplication.Input{
		UserID:          currentUser(c),
		SchemeID:        req.SchemeID,
		ApplicationDate: req.ApplicationDate,
		Status:          req.Status,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Application)
}

func (s *Server) updateApplicationStatus(c *gin.Context) {
	var req struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.NewValidationError(err.Error()))
		return
	}
	if !citizenStatuses[req.Status] {
		s.writeError(c, errors.NewValidationError("status "+string(req.Status)+" cannot be set from the citizen app"))
		return
	}

	out, err := s.handlers.UpdateStatus.Execute(c.Request.Context(), &updateapplicationstatus.Input{
		ApplicationID: c.Param("id"),
		UserID:        currentUser(c),
		Status:        req.Status,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
