package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

type StatsHandler struct {
	statsService service.StatsService
	log          logger.Logger
}

func NewStatsHandler(statsService service.StatsService, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		log:          log,
	}
}

func (h *StatsHandler) GetSessionStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.GetSessionStats())
}
