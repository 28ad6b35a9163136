package parallel

import "golang.org/x/sync/errgroup"

// Run executes each task in tasks with at most limit running concurrently,
// and blocks until every task has completed. The returned slice has one
// entry per task, in the same order, holding that task's error (nil on
// success).
//
// Unlike a bare errgroup, a task's failure never cancels the others: Run
// always lets every task run to completion, since each task's own return
// value is swallowed at the errgroup layer and recorded separately.
func Run(limit int, tasks []func() error) []error {
	if limit <= 0 {
		limit = len(tasks)
	}

	results := make([]error, len(tasks))

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, task := range tasks {
		g.Go(func() error {
			results[i] = task()

			return nil
		})
	}

	_ = g.Wait()

	return results
}
