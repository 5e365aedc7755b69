package domain

// Pipeline names a dashboard loader
type Pipeline string

const (
	PipelineKPIs     Pipeline = "kpis"
	PipelineProducts Pipeline = "products"
)

// LoadResult is the outcome of one loader run. Err is nil on success; a
// failed load leaves the view in its previous state.
type LoadResult struct {
	Pipeline Pipeline
	Records  int
	Err      error
}

func (r LoadResult) OK() bool {
	return r.Err == nil
}
