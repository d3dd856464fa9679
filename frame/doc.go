// Package frame drives per-frame callbacks. A Scheduler stands in for one
// environment hook (before-render or animation-frame) and runs its systems in
// order, tracking a tick counter and per-system timing.
package frame
