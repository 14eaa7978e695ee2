// Package taskgraph runs a small directed acyclic graph of tasks. Each task
// declares the tasks it depends on and starts once all of them have
// succeeded; independent tasks run concurrently. The first failure stops the
// graph from starting further tasks.
package taskgraph
