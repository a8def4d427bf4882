// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars endpoint served by the API.
package metrics

import "expvar"

// Operation counters.
var (
	EntitiesAdded       = expvar.NewInt("ecodir_entities_added_total")
	EntitiesUpdated     = expvar.NewInt("ecodir_entities_updated_total")
	EntitiesDeleted     = expvar.NewInt("ecodir_entities_deleted_total")
	SubmissionsTotal    = expvar.NewInt("ecodir_submissions_total")
	SubmissionsApproved = expvar.NewInt("ecodir_submissions_approved_total")
	SubmissionsRejected = expvar.NewInt("ecodir_submissions_rejected_total")
	AssistantQueries    = expvar.NewInt("ecodir_assistant_queries_total")
	AssistantFallbacks  = expvar.NewInt("ecodir_assistant_fallbacks_total")
	InspectTotal        = expvar.NewInt("ecodir_inspect_total")
	InspectFailed       = expvar.NewInt("ecodir_inspect_failed_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Add increments the given counter by n.
func Add(counter *expvar.Int, n int) { counter.Add(int64(n)) }
