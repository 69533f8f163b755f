// Package orchestrator runs every configured backend for a start or stop
// command.
//
// # Ordering
//
// Backends are registered in start order, data tier first:
//
//  1. Atlas (databases)
//  2. AKS (clusters)
//  3. Kubernetes (workloads running on the clusters)
//  4. Databricks (jobs consuming the data)
//
// StopAll walks the same list backwards so that nothing is left running on
// top of a stopped dependency.
//
// # Failure handling
//
// Backends run one at a time and always to completion. A failed backend never
// prevents the next one from running; its Outcome is collected into the
// Summary and reported once every backend has had its turn.
//
// # Usage Example
//
//	orch := orchestrator.New(log, atlasBackend, aksBackend, kubeBackend, databricksBackend)
//	summary := orch.StopAll(ctx)
//	if err := summary.Err(); err != nil {
//	    os.Exit(1)
//	}
package orchestrator
