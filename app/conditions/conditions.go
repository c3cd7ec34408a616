// Package conditions checks host-level guards before a sync task runs,
// based on system metrics. Heavy sync passes can be held off while the
// box is busy serving the Django app.
package conditions

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/parcinfo/zbxlink/app/schedule"
)

// Checker verifies task run conditions against the local host
type Checker struct{}

// Check verifies if all conditions are met.
// Returns true if conditions are satisfied, false with a reason otherwise.
func (c *Checker) Check(cond schedule.ConditionsConfig) (bool, string) {
	if cond.CPUBelow != nil {
		if ok, reason := checkCPU(*cond.CPUBelow); !ok {
			return false, reason
		}
	}

	if cond.MemoryBelow != nil {
		if ok, reason := checkMemory(*cond.MemoryBelow); !ok {
			return false, reason
		}
	}

	if cond.LoadAvgBelow != nil {
		if ok, reason := checkLoadAvg(*cond.LoadAvgBelow); !ok {
			return false, reason
		}
	}

	if cond.DiskFreeAbove != nil {
		path := cond.DiskFreePath
		if path == "" {
			path = "/"
		}
		if ok, reason := checkDiskFree(*cond.DiskFreeAbove, path); !ok {
			return false, reason
		}
	}

	if cond.Custom != "" {
		if ok, reason := checkCustom(cond.Custom); !ok {
			return false, reason
		}
	}

	return true, ""
}

func checkCPU(threshold int) (bool, string) {
	cpuPercent, err := cpu.Percent(time.Second, false)
	if err != nil {
		return false, fmt.Sprintf("failed to get CPU: %v", err)
	}
	if len(cpuPercent) == 0 {
		return false, "no CPU data available"
	}
	current := int(cpuPercent[0])
	if current >= threshold {
		return false, fmt.Sprintf("CPU at %d%%, threshold %d%%", current, threshold)
	}
	return true, ""
}

func checkMemory(threshold int) (bool, string) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return false, fmt.Sprintf("failed to get memory: %v", err)
	}
	current := int(v.UsedPercent)
	if current >= threshold {
		return false, fmt.Sprintf("memory at %d%%, threshold %d%%", current, threshold)
	}
	return true, ""
}

func checkLoadAvg(threshold float64) (bool, string) {
	loads, err := load.Avg()
	if err != nil {
		return false, fmt.Sprintf("failed to get load average: %v", err)
	}
	if loads.Load1 >= threshold {
		return false, fmt.Sprintf("load at %.2f, threshold %.2f", loads.Load1, threshold)
	}
	return true, ""
}

func checkDiskFree(minFreePercent int, path string) (bool, string) {
	usage, err := disk.Usage(path)
	if err != nil {
		return false, fmt.Sprintf("failed to get disk usage for %s: %v", path, err)
	}
	freePercent := 100 - int(usage.UsedPercent)
	if freePercent < minFreePercent {
		return false, fmt.Sprintf("disk free at %d%%, need %d%% on %s", freePercent, minFreePercent, path)
	}
	return true, ""
}

// checkCustom runs a custom script and checks its exit code
func checkCustom(script string) (bool, string) {
	cmd := exec.Command("sh", "-c", script) //nolint:gosec // the script comes from the operator's task file
	if err := cmd.Run(); err != nil {
		return false, fmt.Sprintf("custom check failed: %v", err)
	}
	return true, ""
}
