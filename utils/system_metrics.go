package utils

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
)

var cpuUsageGauge = promauto.NewGaugeFunc(
	prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Current system CPU usage as a percentage",
	},
	GetCPUUsage,
)

// GetCPUUsage returns the current CPU usage as a percentage
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}
