package cron

import "context"

type catalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefreshJob re-fetches the product catalog so the in-memory snapshot
// stays close to upstream between restarts.
type CatalogRefreshJob struct {
	provider catalogRefresher
}

func NewCatalogRefreshJob(provider catalogRefresher) *CatalogRefreshJob {
	return &CatalogRefreshJob{provider: provider}
}

func (j *CatalogRefreshJob) Name() string { return "catalog-refresh" }

func (j *CatalogRefreshJob) Run(ctx context.Context) error {
	return j.provider.Refresh(ctx)
}
