package util

// BatchFailure is one item that failed during a best-effort pass, labeled so
// the caller can report which unit of work broke.
type BatchFailure struct {
	Label string
	Err   error
}

// BatchResult collects the outcomes of a best-effort pass.
type BatchResult[R any] struct {
	Successes []R
	Failures  []BatchFailure
}

// BestEffortMap runs op over each item independently: one item's failure is
// recorded and never aborts the rest. Items are processed sequentially, in
// order. Feed discovery and batch scoring share this policy.
func BestEffortMap[T, R any](items []T, label func(T) string, op func(T) (R, error)) BatchResult[R] {
	var result BatchResult[R]
	for _, item := range items {
		out, err := op(item)
		if err != nil {
			result.Failures = append(result.Failures, BatchFailure{Label: label(item), Err: err})
			continue
		}
		result.Successes = append(result.Successes, out)
	}
	return result
}
