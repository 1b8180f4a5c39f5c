// Package light implements a traffic light running as an independent actor.
//
// A Light starts red. Simulate launches a background task that keeps
// toggling between red and green after a random duration and publishes every
// new phase to the light's blocking queue and to all pending waiters.
// WaitForGreen blocks the caller until the next green phase is published.
package light
