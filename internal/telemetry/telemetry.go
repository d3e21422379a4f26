// Package telemetry replaces console-log-as-telemetry with an injected
// reporter. Components receive a Reporter at construction; nothing reaches
// for globals.
package telemetry

// Reporter receives structured events from the simulation core. All calls
// are fire-and-forget and must not block the tick.
type Reporter interface {
	TickProcessed(dt float32)
	ContactRecorded(surface string)
	StuckRecovery()
	EffectSpawned(kind string)
	EffectExpired(kind string)
	EffectRejected(kind string)
	ChallengeResolved(success bool)
	EnvironmentFallback(reason string)
}

// Nop discards everything. Handy default for tests and tools.
type Nop struct{}

func (Nop) TickProcessed(float32)      {}
func (Nop) ContactRecorded(string)     {}
func (Nop) StuckRecovery()             {}
func (Nop) EffectSpawned(string)       {}
func (Nop) EffectExpired(string)       {}
func (Nop) EffectRejected(string)      {}
func (Nop) ChallengeResolved(bool)     {}
func (Nop) EnvironmentFallback(string) {}
