package wikidex

import (
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// perWorkerBudgetBytes is a conservative estimate of one worker's peak
// resident memory (interning maps plus aids buffers) before a whole
// flush resets it. Used only to temper the CPU-reported default worker
// count, never to hard-cap a user-supplied THREADS value.
const perWorkerBudgetBytes = 256 << 20

// DefaultWorkerCount returns the worker count the orchestrator should use
// when THREADS is unset (spec.md §4.7, §6): the OS-reported online CPU
// count, tempered by available memory the way the teacher's utils.go
// tempers its own thread heuristics with github.com/klauspost/cpuid
// topology data, and capped so workers don't starve the machine of RAM —
// a use for github.com/pbnjay/memory the teacher imports but never wires
// to a budget. Never exceeds runtime.NumCPU() or maxRegions.
func DefaultWorkerCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}

	if cpuid.CPU.ThreadsPerCore > 1 {
		cores := n / cpuid.CPU.ThreadsPerCore
		if cores >= 1 {
			n = cores
		}
	}

	if avail := memory.FreeMemory(); avail > 0 {
		byBudget := int(avail / perWorkerBudgetBytes)
		if byBudget < 1 {
			byBudget = 1
		}
		if byBudget < n {
			n = byBudget
		}
	}

	if n > maxRegions {
		n = maxRegions
	}
	if n < 1 {
		n = 1
	}
	return n
}
