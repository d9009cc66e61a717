// internal/app/features/weather/handler.go
package weather

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"go.uber.org/zap"
)

// Report is the weather summary returned to the client.
type Report struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
}

// mockReport is served for every location until a real provider is wired in.
var mockReport = Report{
	Location:    "Current Location",
	Temperature: 22,
	Condition:   "Sunny",
	Humidity:    60,
	WindSpeed:   8,
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles GET /api/weather?lat=&lon=. Both coordinates must be
// present and numeric; their values do not change the response.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := map[string]string{}
	lat, latOK := parseCoord(q.Get("lat"), -90, 90, "lat", fields)
	lon, lonOK := parseCoord(q.Get("lon"), -180, 180, "lon", fields)
	if !latOK || !lonOK {
		apierr.Write(w, apierr.Validation(fields))
		return
	}

	h.Log.Debug("weather lookup", zap.Float64("lat", lat), zap.Float64("lon", lon))
	apierr.JSON(w, http.StatusOK, mockReport)
}

func parseCoord(raw string, lo, hi float64, name string, fields map[string]string) (float64, bool) {
	if raw == "" {
		fields[name] = "is required"
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		fields[name] = "must be a number"
		return 0, false
	}
	if v < lo || v > hi {
		fields[name] = "out of range"
		return 0, false
	}
	return v, true
}
