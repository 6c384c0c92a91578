// Package service implements the application logic of skillindex.
//
// IndexService sits between the classifier, the repository and the outer
// surfaces (CLI, HTTP, file watcher). It builds the category index in
// parallel, writes it atomically, records each run, and answers lookups
// against the latest stored classifications.
//
// # Event System
//
// Sync publishes index_built, index_unchanged or index_failed on the
// EventBus. The SSE hub relays them to connected clients.
//
// # Metrics
//
// Classification and sync counters plus a build duration histogram are
// registered with the default Prometheus registry.
package service
