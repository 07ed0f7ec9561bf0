package game

import "github.com/mawside/cellar/ecs"

// TurnState is a world resource tracking the turn counter and whether the
// run has ended.
type TurnState struct {
	Turn     int
	GameOver bool
}

// PlayerIntent is a world resource the frontend fills in before stepping the
// scheduler: the direction the player wants to move or attack this turn.
type PlayerIntent struct {
	DX, DY  int
	Pending bool
}

// Attack is one queued hit, resolved by DamageSystem at the end of the turn.
type Attack struct {
	Target   ecs.Entity
	Attacker string
	Power    int
}

// AttackQueue is a world resource collecting the turn's attacks so damage
// resolution happens in one place, after all movers have acted.
type AttackQueue struct {
	attacks []Attack
}

// Queue appends an attack.
func (q *AttackQueue) Queue(target ecs.Entity, attacker string, power int) {
	q.attacks = append(q.attacks, Attack{Target: target, Attacker: attacker, Power: power})
}

// Drain returns the queued attacks and empties the queue.
func (q *AttackQueue) Drain() []Attack {
	attacks := q.attacks
	q.attacks = nil
	return attacks
}

// Len returns the number of queued attacks.
func (q *AttackQueue) Len() int {
	return len(q.attacks)
}

// TurnSystem advances the turn counter. Registered last so a completed
// scheduler step equals a completed turn.
type TurnSystem struct {
	Turns ecs.Resource[TurnState]
}

func (s *TurnSystem) Execute(tick *ecs.Tick) {
	if !s.Turns.Get().GameOver {
		s.Turns.Get().Turn++
	}
}
