/* interface.go
 * Contains the interface the API reports its metrics through
 */

package metrics

// Metrics defines the interface for collecting tracker metrics.
// The engine and front-ends only see this interface, so tests can swap in Mock.
type Metrics interface {
	IncPicks(outcome string)
	IncMatchesAdded()
	IncMatchesEnded()
	ObserveRecompute(duration float64)
	IncLookupFailures()
	IncCommands(command string)
}
