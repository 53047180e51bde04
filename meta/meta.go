// meta/meta.go
package meta

// DEPTH defines the default alpha-beta search depth in plies.
const DEPTH = 3

// SEARCH_SEED seeds battle sampling inside the search tree.
const SEARCH_SEED = 1

// MAX_ROUNDS caps a local game; both factions move once per round.
const MAX_ROUNDS = 100

// NUM_FACTOR weights the unit count difference.
const NUM_FACTOR = 10.0

// DIST_FACTOR weights the human conversion potential.
const DIST_FACTOR = 0.1

// PROXIMITY_EPSILON weights the distance between the two factions.
const PROXIMITY_EPSILON = 0.001

// GROUP_WEIGHT is the base of the weights of a heuristic group.
const GROUP_WEIGHT = 1000.0

// GAMES defines the number of games per match up.
const GAMES = 10

// GO_ROUTINES bounds the number of games played at the same time.
const GO_ROUTINES = 4
