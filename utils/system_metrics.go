package utils

import (
	"log"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage samples total CPU utilization over one second. Returns 0 if
// the sample fails; the status endpoint treats that as unknown.
func GetCPUUsage() float64 {
	samples, err := cpu.Percent(time.Second, false)
	if err != nil || len(samples) == 0 {
		if err != nil {
			log.Printf("Warning: failed to sample CPU usage: %v", err)
		}
		return 0
	}
	return samples[0]
}

// GetMemoryUsage returns the used fraction of physical memory in percent.
func GetMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("Warning: failed to read memory usage: %v", err)
		return 0
	}
	return vm.UsedPercent
}
