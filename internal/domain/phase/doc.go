// Package phase defines the two phases a traffic light can show.
//
// Phase is a small comparable value type with helpers to toggle it and to
// convert it to and from its textual form.
package phase
