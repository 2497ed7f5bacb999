package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"genai-chat/internal/bootstrap"
)

// HealthHandler reports process liveness, each backing dependency, and
// whether the database has the session-aware layout.
type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

var errAMQPClosed = errors.New("connection closed")

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{}
	healthy := true
	for name, probe := range map[string]func(context.Context) error{
		"mysql":    h.pingMySQL,
		"redis":    h.pingRedis,
		"rabbitmq": h.pingRabbitMQ,
	} {
		if err := probe(ctx); err != nil {
			deps[name] = gin.H{"ok": false, "message": err.Error()}
			healthy = false
			continue
		}
		deps[name] = gin.H{"ok": true}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"app":            h.app.Config.App.Name,
		"env":            h.app.Config.App.Env,
		"uptime_sec":     int(time.Since(h.app.StartedAt).Seconds()),
		"session_schema": h.app.Schema.SupportsSessions(),
		"dependencies":   deps,
	})
}

func (h *HealthHandler) pingMySQL(ctx context.Context) error {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	return h.app.Redis.Ping(ctx).Err()
}

func (h *HealthHandler) pingRabbitMQ(context.Context) error {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return errAMQPClosed
	}
	return nil
}
