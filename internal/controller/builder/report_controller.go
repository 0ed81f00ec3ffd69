package builder

import (
	"net/http"

	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/middleware"
	"github.com/Sadeghizad/Form-creator/internal/service"
	"github.com/Sadeghizad/Form-creator/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ReportController serves form reports to owners, aggregate reports to
// admins, and streams live report updates over websocket.
type ReportController struct {
	reportSvc service.ReportService
	hub       *ws.Hub
	upgrader  websocket.Upgrader
}

func NewReportController(reportSvc service.ReportService, hub *ws.Hub) *ReportController {
	return &ReportController{
		reportSvc: reportSvc,
		hub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (rc *ReportController) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/forms/:id", rc.FormReport)
	reports.POST("/admin", rc.TriggerAdminReport)
	reports.GET("/admin", rc.LatestAdminReport)
	reports.GET("/live", rc.Live)
}

// FormReport godoc
// @Summary Get a form's report
// @Description Folds any unprocessed answers and returns tallies per question. Owner only.
// @Tags Reports
// @Produce json
// @Param id path int true "Form ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} dto.ErrorResponse "Not the form owner"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /builder/reports/forms/{id} [get]
// @Security BearerAuth
func (rc *ReportController) FormReport(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	resp, err := rc.reportSvc.UserReport(middleware.CurrentUserID(ctx), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// TriggerAdminReport godoc
// @Summary Generate a platform-wide report
// @Description Counts users, forms, processes, questions and answers over several windows. Admin only.
// @Tags Reports
// @Success 202 "Accepted"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /builder/reports/admin [post]
// @Security BearerAuth
func (rc *ReportController) TriggerAdminReport(ctx *gin.Context) {
	if err := rc.reportSvc.TriggerAdminReport(middleware.CurrentUserID(ctx)); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

// LatestAdminReport godoc
// @Summary Get the latest platform-wide report
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.AdminReportResponse
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "No report generated yet"
// @Router /builder/reports/admin [get]
// @Security BearerAuth
func (rc *ReportController) LatestAdminReport(ctx *gin.Context) {
	resp, err := rc.reportSvc.LatestAdminReport(middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Live godoc
// @Summary Subscribe to live report updates
// @Description Upgrades to a websocket; every report fold and admin report is pushed as JSON
// @Tags Reports
// @Success 101 "Switching Protocols"
// @Router /builder/reports/live [get]
// @Security BearerAuth
func (rc *ReportController) Live(ctx *gin.Context) {
	conn, err := rc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("report ws upgrade failed")
		return
	}
	rc.hub.AddConnection(conn)

	// Reader loop only drains control frames; the hub writes.
	go func() {
		defer rc.hub.RemoveConnection(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
