package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sweeplabs/sweepd/internal/core/application"
	"github.com/sweeplabs/sweepd/internal/core/domain"
	"github.com/sweeplabs/sweepd/utils"
)

type handler struct {
	svc *application.Service
}

// Health reports ledger reachability and the engine's authorization
// state. It requires no authentication.
func (h *handler) Health(c *gin.Context) {
	report := h.svc.Health(c.Request.Context())
	if !report.LedgerReachable {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  report.LedgerError,
		})
		return
	}

	body := gin.H{
		"status":          "healthy",
		"service_address": report.ServiceAddress,
		"block_number":    report.BlockNumber,
		"authorization":   report.Trust.String(),
	}
	if report.TrustReason != "" {
		body["authorization_detail"] = report.TrustReason
	}
	c.JSON(http.StatusOK, body)
}

// WebhookReceived handles deposit notifications. The payload is logged
// for debugging but carries no decision weight: the engine always reads
// a fresh balance.
func (h *handler) WebhookReceived(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err == nil && len(payload) > 0 {
		log.WithFields(log.Fields{
			"request_id": c.GetString("request_id"),
			"payload":    payload,
		}).Info("webhook notification received")
	}
	h.runSweep(c)
}

// ManualSweep triggers a sweep on demand, for operators and testing.
func (h *handler) ManualSweep(c *gin.Context) {
	h.runSweep(c)
}

func (h *handler) runSweep(c *gin.Context) {
	outcome := h.svc.Sweep(c.Request.Context())

	switch outcome.Status {
	case domain.StatusNoAction:
		c.JSON(http.StatusOK, gin.H{
			"status":  string(domain.StatusNoAction),
			"message": "insufficient balance to sweep",
		})
	case domain.StatusSuccess:
		policy := h.svc.Policy()
		c.JSON(http.StatusOK, gin.H{
			"status":                string(domain.StatusSuccess),
			"tx_id":                 outcome.TxID,
			"amount_swept_trx":      utils.SunToTRX(outcome.AmountSun),
			"amount_swept_sun":      outcome.AmountSun,
			"remaining_balance_trx": utils.SunToTRX(policy.ResidualSun),
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"status": string(domain.StatusFailed),
			"error":  outcome.Reason,
		})
	}
}
