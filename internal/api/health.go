package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	GoVersion     string  `json:"goVersion"`
	CPUCount      int     `json:"cpuCount"`
	MemUsedPct    float64 `json:"memUsedPct,omitempty"`
	WSClients     int     `json:"wsClients"`
}

// handleHealth reports process uptime and basic host pressure. Host
// metrics are best-effort; a probe failure never fails the endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		GoVersion:     runtime.Version(),
		WSClients:     s.hub.ClientCount(),
	}

	if n, err := cpu.Counts(true); err == nil {
		resp.CPUCount = n
	}
	if v, err := mem.VirtualMemory(); err == nil {
		resp.MemUsedPct = v.UsedPercent
	}

	respondData(w, resp)
}
