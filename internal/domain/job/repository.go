package job

import "context"

// JobRepository reads the job/shift catalog. The catalog is owned by the
// host application; this service never writes it.
type JobRepository interface {
	// GetByID retrieves a single job with its shift document
	GetByID(ctx context.Context, id string) (*Job, error)

	// GetByIDs batch-fetches jobs; missing ids are simply absent from the result
	GetByIDs(ctx context.Context, ids []string) (map[string]*Job, error)

	// ListIDs returns every job id, used when an aggregation has no job filter
	ListIDs(ctx context.Context) ([]string, error)
}
