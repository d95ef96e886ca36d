package testutil

import (
	"errors"
	"sync"

	"estatehub/internal/sentinel"
)

// Outcomes tallies how a batch of racing calls ended. Failures keeps the
// errors that were neither conflicts nor misses so a test can print them.
type Outcomes struct {
	OK        int
	Conflicts int
	Missing   int
	Failures  []error
}

// Total is the number of calls that ran.
func (o Outcomes) Total() int {
	return o.OK + o.Conflicts + o.Missing + len(o.Failures)
}

// Race launches n calls of fn and releases them together, so they hit the
// store as close to simultaneously as the scheduler allows.
func Race(n int, fn func(i int) error) Outcomes {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}()
	}
	close(start)
	wg.Wait()

	var out Outcomes
	for _, err := range errs {
		switch {
		case err == nil:
			out.OK++
		case errors.Is(err, sentinel.ErrAlreadyExists):
			out.Conflicts++
		case errors.Is(err, sentinel.ErrNotFound):
			out.Missing++
		default:
			out.Failures = append(out.Failures, err)
		}
	}
	return out
}
