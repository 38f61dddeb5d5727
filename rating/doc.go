// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rating converts a voter's needs and the state of the world into a
rating per election option.

# Scale

Ratings live on seven levels:

	ExtremelyNegative = -30
	Negative          = -20
	SlightlyNegative  = -10
	Neutral           =   0
	SlightlyPositive  =  10
	Positive          =  20
	ExtremelyPositive =  30

After jitter and care modifiers a rating can fall between or outside the
levels; encoders handle any integer.

# Pipeline

Rate applies, in order:

 1. a baseline per option kind (hunger, shelter, treasury and housing fill)
 2. death aversion: ceil(death_care * deaths_of_reason / (population + recent deaths))
 3. the food veto: a farm growing a refused food group is forced to ExtremelyNegative
 4. jitter in [SlightlyNegative, SlightlyPositive) drawn from the shared stream
 5. the voter's care modifier for the option's category

The result is sorted best first; ties keep option order. Ballot encoders
rely on that order.
*/
package rating
