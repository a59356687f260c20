// Package api serves the citizen HTTP API. Every route delegates to the same handler the
// corresponding Zeebe worker uses, so both surfaces share validation and error codes.
package api

import (
	"net/http"

	"schemesathi/internal/common/logger"
	"schemesathi/internal/schemes/catalog"
	listapplications "schemesathi/internal/workers/application/list-applications"
	recordapplication "schemesathi/internal/workers/application/record-application"
	updateapplicationstatus "schemesathi/internal/workers/application/update-application-status"
	getuserprofile "schemesathi/internal/workers/profile/get-user-profile"
	saveuserprofile "schemesathi/internal/workers/profile/save-user-profile"
	resolveeligibleschemes "schemesathi/internal/workers/recommendation/resolve-eligible-schemes"
	getschemedetails "schemesathi/internal/workers/schemes/get-scheme-details"
	searchschemes "schemesathi/internal/workers/schemes/search-schemes"
	summarizescheme "schemesathi/internal/workers/schemes/summarize-scheme"
	validatesession "schemesathi/internal/workers/session/validate-session"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Session           *validatesession.Handler
	GetProfile        *getuserprofile.Handler
	SaveProfile       *saveuserprofile.Handler
	EligibleSchemes   *resolveeligibleschemes.Handler
	SchemeDetails     *getschemedetails.Handler
	SearchSchemes     *searchschemes.Handler
	SummarizeScheme   *summarizescheme.Handler
	RecordApplication *recordapplication.Handler
	ListApplications  *listapplications.Handler
	UpdateStatus      *updateapplicationstatus.Handler
}

type Server struct {
	catalog  *catalog.Catalog
	handlers Handlers
	logger   logger.Logger
}

func NewServer(cat *catalog.Catalog, handlers Handlers, log logger.Logger) *Server {
	return &Server{
		catalog:  cat,
		handlers: handlers,
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Router builds the gin engine. Catalog routes are public; everything else needs a session.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/api/v1")
	v1.GET("/schemes", s.listSchemes)
	v1.GET("/schemes/search", s.searchSchemes)
	v1.GET("/schemes/:id", s.getScheme)
	v1.GET("/schemes/:id/summary", s.summarizeScheme)

	authed := v1.Group("")
	authed.Use(s.requireSession())
	authed.GET("/schemes/eligible", s.eligibleSchemes)
	authed.GET("/profile", s.getProfile)
	authed.PUT("/profile", s.saveProfile)
	authed.GET("/applications", s.listApplications)
	authed.POST("/applications", s.recordApplication)
	authed.PATCH("/applications/:id/status", s.updateApplicationStatus)

	return r
}
