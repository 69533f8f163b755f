package databricks

import "cerdito/internal/config"

// Plan is the result of matching one declaration against the live jobs.
// Every declared name ends up in exactly one of Act (by job), Unscheduled
// or Unmatched.
type Plan struct {
	Act         []Job
	Unscheduled []string
	Unmatched   []string
}

// Reconcile decides which live jobs a declaration acts on. It does not touch
// decl; the unresolved names live in a set of their own.
func Reconcile(decl config.DatabricksWorkspace, jobs []Job) Plan {
	unresolved := make(map[string]struct{})
	if !decl.AllJobs {
		for _, name := range decl.Jobs {
			unresolved[name] = struct{}{}
		}
	}

	var plan Plan
	for _, job := range jobs {
		if decl.AllJobs {
			if job.Scheduled() {
				plan.Act = append(plan.Act, job)
			}
			continue
		}

		name := job.Settings.Name
		if _, ok := unresolved[name]; !ok {
			continue
		}
		delete(unresolved, name)

		if job.Scheduled() {
			plan.Act = append(plan.Act, job)
		} else {
			plan.Unscheduled = append(plan.Unscheduled, name)
		}
	}

	// Walk the declaration again so leftovers keep their declared order.
	for _, name := range decl.Jobs {
		if _, ok := unresolved[name]; ok {
			plan.Unmatched = append(plan.Unmatched, name)
			delete(unresolved, name)
		}
	}
	return plan
}
