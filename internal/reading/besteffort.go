package reading

import "log"

// BestEffortResult records the outcome of a side effect that must never
// fail the primary operation.
type BestEffortResult struct {
	Name string
	OK   bool
	Err  error
}

// runBestEffort invokes fn, catching and logging any error. A nil fn counts
// as success so optional collaborators can simply be left unset.
func runBestEffort(name string, fn func() error) BestEffortResult {
	if fn == nil {
		return BestEffortResult{Name: name, OK: true}
	}
	if err := fn(); err != nil {
		log.Printf("best-effort %s failed: %v", name, err)
		return BestEffortResult{Name: name, Err: err}
	}
	return BestEffortResult{Name: name, OK: true}
}
