// Package backend defines the contract shared by every cloud provider
// integration cerdito drives.
//
// A Backend pauses or resumes a list of resources at one provider. The
// protocol is the same everywhere:
//
//  1. Readiness is evaluated before any network traffic. An absent
//     configuration is an informational no-op, an empty credential is a
//     warning and also a no-op.
//  2. Each resource is processed in declaration order. Its outcome is
//     classified as success, already in the target state (also success) or
//     failure. A failure never stops the remaining resources.
//  3. The backend reports one Outcome, failed when any resource failed.
//
// The sub-packages atlas, aks, databricks and kubernetes implement the
// provider specific requests on top of the helpers in this package.
package backend
