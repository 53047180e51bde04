package game

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Battle is a clash between units entering a cell and its occupants.
type Battle struct {
	Attacker  Kind
	Attackers int
	Defender  Kind
	Defenders int
}

// Outcome is what is left in the contested cell. Winner is Nobody when both
// sides were wiped out.
type Outcome struct {
	Winner    Kind
	Survivors int
}

// Cell converts the outcome into the contested cell's new population.
func (o Outcome) Cell() Cell {
	if o.Winner == Nobody || o.Survivors <= 0 {
		return Cell{}
	}
	return Cell{Kind: o.Winner, Count: o.Survivors}
}

// Mass is the probability of one outcome.
type Mass struct {
	Outcome
	Probability float64
}

// Expectation is one side's expected survivors and its chance of winning.
type Expectation struct {
	Kind        Kind
	Survivors   float64
	Probability float64
}

// Validate rejects battles that must be handled as a plain merge or cannot
// happen at all.
func (b Battle) Validate() error {
	switch {
	case !b.Attacker.IsFaction():
		return Errorf(CodeInvalidBattle, "%v cannot attack", b.Attacker)
	case b.Defender == Nobody:
		return Errorf(CodeInvalidBattle, "%v attacks an empty cell", b.Attacker)
	case b.Attacker == b.Defender:
		return Errorf(CodeInvalidBattle, "%v cannot fight its own kind", b.Attacker)
	case b.Attackers <= 0:
		return Errorf(CodeInvalidBattle, "attack with %d units", b.Attackers)
	case b.Defenders < 0:
		return Errorf(CodeInvalidBattle, "negative defender count %d", b.Defenders)
	}
	return nil
}

// Certain reports whether the attacker wins without any randomness: it must
// at least match humans, or outnumber the other faction by more than 1.5.
func (b Battle) Certain() bool {
	if b.Defender == Human {
		return b.Attackers >= b.Defenders
	}
	return 2*b.Attackers > 3*b.Defenders
}

// WinProbability is the attacker's chance of winning.
func (b Battle) WinProbability() float64 {
	if b.Certain() {
		return 1
	}
	a, d := float64(b.Attackers), float64(b.Defenders)
	switch {
	case a == d:
		return 0.5
	case a < d:
		return 0.5 * a / d
	default:
		return a/d - 0.5
	}
}

// trials returns the binomial trial count used to draw each side's survivors.
// A winning attacker converts the humans it beats.
func (b Battle) trials() (attacker, defender int) {
	if b.Defender == Human {
		return b.Attackers + b.Defenders, b.Defenders
	}
	return b.Attackers, b.Defenders
}

// certainOutcome is the result of a battle the attacker cannot lose.
func (b Battle) certainOutcome() Outcome {
	survivors, _ := b.trials()
	return Outcome{Winner: b.Attacker, Survivors: survivors}
}

// Expectation returns the attacker's and the defender's expected survivors.
func (b Battle) Expectation() (attacker, defender Expectation, err error) {
	if err := b.Validate(); err != nil {
		return Expectation{}, Expectation{}, err
	}
	p := b.WinProbability()
	na, nd := b.trials()
	attacker = Expectation{Kind: b.Attacker, Survivors: p * float64(na), Probability: p}
	defender = Expectation{Kind: b.Defender, Survivors: (1 - p) * float64(nd), Probability: 1 - p}
	if b.Certain() {
		attacker.Survivors = float64(b.certainOutcome().Survivors)
	}
	return attacker, defender, nil
}

// Distribution enumerates every outcome with its exact probability. Survivor
// masses are binomial pmfs scaled by the winner's probability; the cases where
// the winner ends with zero survivors are merged into a single empty outcome.
func (b Battle) Distribution() ([]Mass, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.Certain() {
		return []Mass{{Outcome: b.certainOutcome(), Probability: 1}}, nil
	}

	p := b.WinProbability()
	na, nd := b.trials()
	masses := make([]Mass, 0, na+nd+1)
	for k := 1; k <= na; k++ {
		masses = append(masses, Mass{
			Outcome:     Outcome{Winner: b.Attacker, Survivors: k},
			Probability: p * binomialProb(na, p, k),
		})
	}
	for k := 1; k <= nd; k++ {
		masses = append(masses, Mass{
			Outcome:     Outcome{Winner: b.Defender, Survivors: k},
			Probability: (1 - p) * binomialProb(nd, 1-p, k),
		})
	}
	none := p*binomialProb(na, p, 0) + (1-p)*binomialProb(nd, 1-p, 0)
	masses = append(masses, Mass{Outcome: Outcome{Winner: Nobody}, Probability: none})
	return masses, nil
}

func binomialProb(n int, p float64, k int) float64 {
	switch {
	case k < 0 || k > n:
		return 0
	case p <= 0:
		if k == 0 {
			return 1
		}
		return 0
	case p >= 1:
		if k == n {
			return 1
		}
		return 0
	}
	return distuv.Binomial{N: float64(n), P: p}.Prob(float64(k))
}

// Resolver decides the outcome of a battle.
type Resolver interface {
	Resolve(b Battle) (Outcome, error)
}

// RandomResolver samples outcomes from a seeded source. Two resolvers built
// from the same seed produce the same sequence of outcomes.
type RandomResolver struct {
	src rand.Source
}

func NewRandomResolver(seed uint64) *RandomResolver {
	return &RandomResolver{src: rand.NewSource(seed)}
}

func (r *RandomResolver) Resolve(b Battle) (Outcome, error) {
	if err := b.Validate(); err != nil {
		return Outcome{}, err
	}
	if b.Certain() {
		return b.certainOutcome(), nil
	}

	p := b.WinProbability()
	na, nd := b.trials()
	winner, n, pw := b.Defender, nd, 1-p
	if (distuv.Bernoulli{P: p, Src: r.src}).Rand() == 1 {
		winner, n, pw = b.Attacker, na, p
	}
	survivors := r.survivors(n, pw)
	if survivors == 0 {
		return Outcome{Winner: Nobody}, nil
	}
	return Outcome{Winner: winner, Survivors: survivors}, nil
}

func (r *RandomResolver) survivors(n int, p float64) int {
	switch {
	case n <= 0 || p <= 0:
		return 0
	case p >= 1:
		return n
	}
	return int(distuv.Binomial{N: float64(n), P: p, Src: r.src}.Rand())
}

// ExpectedResolver replaces sampling with the expected result: the likelier
// side wins with its expected survivors, the attacker taking ties.
type ExpectedResolver struct{}

func (ExpectedResolver) Resolve(b Battle) (Outcome, error) {
	attacker, defender, err := b.Expectation()
	if err != nil {
		return Outcome{}, err
	}
	if b.Certain() {
		return b.certainOutcome(), nil
	}
	winner := defender
	if attacker.Probability >= defender.Probability {
		winner = attacker
	}
	survivors := int(math.Round(winner.Survivors))
	if survivors == 0 {
		return Outcome{Winner: Nobody}, nil
	}
	return Outcome{Winner: winner.Kind, Survivors: survivors}, nil
}
