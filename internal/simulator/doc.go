// Package simulator produces a bounded, animated stream of synthetic sensor
// readings for the Real-time Demo view, the websocket stream, and the
// headless simulate command.
//
// # Iteration
//
// A run executes for exactly the requested number of steps. Each step:
//
//  1. draws a fresh Snapshot (temperature, humidity, CO2 plus display deltas)
//  2. draws a Sample value in [0,100] stamped with the injected clock
//  3. appends the sample to the run's Series
//  4. hands a Frame to the Sink
//  5. pauses for the interval
//
// Nothing carries over between runs: every run starts with an empty Series.
//
// # Cancellation
//
// Run honours its context at every emit and pause. A cancelled run returns
// ctx.Err() together with the samples recorded so far. Start wraps Run in a
// goroutine and exposes the frames on an unbuffered channel, so a slow
// consumer throttles the loop instead of the loop running ahead.
//
// # Testing
//
// Rand, Clock and Sleep are plain fields. Tests seed Rand and swap Sleep for
// a recorder so runs finish instantly and deterministically.
package simulator
