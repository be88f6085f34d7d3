// Package drift defines the core types for Lagrangian particle transport:
//
//   - [Ensemble]: the particle set as parallel attribute arrays
//   - [Environment]: a read-only per-step snapshot of ambient fields
//   - [Config]: the validated per-run process configuration
//   - [Status]: the one-way particle lifecycle (active → stranded/retired/outside)
//
// The physical process implementations live in internal/ocean and are
// composed by the step pipeline in internal/step; this package only holds
// the data model and the collaborator contracts between them.
package drift
