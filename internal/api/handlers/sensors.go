package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"discogswatch/internal/sensors"
	"discogswatch/internal/service"
)

type SensorHandler struct {
	poller     *service.Poller
	namePrefix string
	enabled    []sensors.Descriptor
}

func NewSensorHandler(poller *service.Poller, namePrefix string, enabled []sensors.Descriptor) *SensorHandler {
	return &SensorHandler{
		poller:     poller,
		namePrefix: namePrefix,
		enabled:    enabled,
	}
}

// ListSensors returns the current reading of every enabled sensor.
func (h *SensorHandler) ListSensors(c *gin.Context) {
	snap, pick := h.poller.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sensors": sensors.ReadAll(h.enabled, h.namePrefix, snap, pick),
	})
}

// GetSensor returns one sensor by key; unknown or disabled keys are 404.
func (h *SensorHandler) GetSensor(c *gin.Context) {
	key := c.Param("key")

	for _, d := range h.enabled {
		if d.Key == key {
			snap, pick := h.poller.Snapshot()
			c.JSON(http.StatusOK, sensors.Read(d, h.namePrefix, snap, pick))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown sensor key"})
}

// GetStatus reports the poller's scheduling state.
func (h *SensorHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.poller.GetStatus())
}
