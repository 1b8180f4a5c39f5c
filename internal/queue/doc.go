// Package queue provides a generic blocking message queue.
//
// Blocking is guarded by a single mutex and a condition variable bound to
// it. Send never blocks and wakes one waiting receiver; Receive waits until
// a value is available. Values are handed out most-recent-first.
package queue
