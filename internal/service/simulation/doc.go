// Package simulation runs one traffic light together with the vehicles
// waiting on it.
//
// A monitor task logs every phase change read from the light queue, and each
// vehicle loops on WaitForGreen and logs its crossings. The run ends when the
// context is done or after a configured number of phase changes.
package simulation
