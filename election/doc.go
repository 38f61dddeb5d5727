// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election runs the election lifecycle: opening elections, collecting
one vote per voter, and closing them into HeldElection records.

# Lifecycle

	Open ──(votes)──> open longer than OpenFor ──> votes? ──yes──> Closed (held, applied, notified)
	                                                     └──no───> Discarded

An Engine is driven by its owner once per tick, in this order:

	engine.StartDue(delta, wants)   // opens one surveyed election per elapsed interval
	engine.Vote(id, voterID, ...)   // cast phase
	engine.CloseDue(delta)          // close phase

Votes cast in a tick are always seen by the close phase of the same tick.

# Closing

Closing an election computes the primary method's result and then every
other method's, applies the primary winner through the Applier, appends
to the history and notifies each Observer. A panic while counting (for
example from a malformed rating vector) is recovered and logged; that
election is dropped and the rest still close. A panicking Observer is
logged and the other observers are still notified.
*/
package election
