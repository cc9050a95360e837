// Package retry provides retry logic with exponential backoff for transient
// license library failures (network errors, 429 and 5xx responses).
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewHTTPErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetchLicense(ctx, key)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns an
// independent copy.
package retry
