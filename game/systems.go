package game

import "github.com/mawside/cellar/ecs"

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// chebyshev is the board distance where diagonals count as one step.
func chebyshev(x1, y1, x2, y2 int) int {
	return max(abs(x1-x2), abs(y1-y2))
}

// blockedAt reports whether a tile-blocking entity other than self stands on
// the tile.
func blockedAt(world *ecs.World, grid *SpatialGrid, x, y int, self ecs.Entity) bool {
	for _, other := range grid.At(x, y) {
		if other != self && ecs.Has[BlocksTile](world, other) {
			return true
		}
	}
	return false
}

// hostileAt returns the first attackable hostile on the tile.
func hostileAt(world *ecs.World, grid *SpatialGrid, x, y int) (ecs.Entity, bool) {
	for _, other := range grid.At(x, y) {
		if ecs.Has[Hostile](world, other) && ecs.Has[CombatStats](world, other) {
			return other, true
		}
	}
	return ecs.NoEntity, false
}

// PlayerActionSystem applies the pending player intent: a bump into a
// hostile queues a melee attack, a bump into open floor moves the player.
type PlayerActionSystem struct {
	Dungeon *Dungeon

	Intent  ecs.Resource[PlayerIntent]
	Grid    ecs.Resource[SpatialGrid]
	Attacks ecs.Resource[AttackQueue]
	Turns   ecs.Resource[TurnState]
	Players ecs.Query[struct {
		ecs.Entity
		*Player
		*Position
		*CombatStats
	}]
}

func (s *PlayerActionSystem) Execute(tick *ecs.Tick) {
	intent := s.Intent.Get()
	if !intent.Pending || s.Turns.Get().GameOver {
		intent.Pending = false
		return
	}
	intent.Pending = false

	grid := s.Grid.Get()
	for _, player := range s.Players.Iter() {
		targetX := player.Position.X + intent.DX
		targetY := player.Position.Y + intent.DY

		if enemy, ok := hostileAt(tick.World, grid, targetX, targetY); ok {
			s.Attacks.Get().Queue(enemy, "Player", player.CombatStats.Power)
			continue
		}

		if !s.Dungeon.Walkable(targetX, targetY) {
			continue
		}
		if blockedAt(tick.World, grid, targetX, targetY, player.Entity) {
			continue
		}

		player.Position.X = targetX
		player.Position.Y = targetY
	}
}

// MeleeAISystem moves hostiles with MeleeAI toward the player and queues an
// attack once adjacent.
type MeleeAISystem struct {
	Dungeon *Dungeon

	Grid    ecs.Resource[SpatialGrid]
	Attacks ecs.Resource[AttackQueue]
	Turns   ecs.Resource[TurnState]
	Monsters ecs.Query[struct {
		ecs.Entity
		*Hostile
		*MeleeAI
		*Position
		*CombatStats
		Name *Name `ecs:"optional"`
	}]
	Players ecs.Query[struct {
		ecs.Entity
		*Player
		*Position
	}]
}

func (s *MeleeAISystem) Execute(tick *ecs.Tick) {
	if s.Turns.Get().GameOver {
		return
	}

	grid := s.Grid.Get()
	for _, player := range s.Players.Iter() {
		for _, monster := range s.Monsters.Iter() {
			if chebyshev(monster.Position.X, monster.Position.Y, player.Position.X, player.Position.Y) <= 1 {
				s.Attacks.Get().Queue(player.Entity, displayName(monster.Name), monster.CombatStats.Power)
				continue
			}

			stepToward(tick.World, s.Dungeon, grid, monster.Entity, monster.Position, player.Position)
		}
	}
}

// RangedAISystem keeps hostiles with RangedAI at distance: they attack as
// soon as the player is within range and only advance while out of range.
type RangedAISystem struct {
	Dungeon *Dungeon

	Grid    ecs.Resource[SpatialGrid]
	Attacks ecs.Resource[AttackQueue]
	Turns   ecs.Resource[TurnState]
	Monsters ecs.Query[struct {
		ecs.Entity
		*Hostile
		*RangedAI
		*Position
		*CombatStats
		Name *Name `ecs:"optional"`
	}]
	Players ecs.Query[struct {
		ecs.Entity
		*Player
		*Position
	}]
}

func (s *RangedAISystem) Execute(tick *ecs.Tick) {
	if s.Turns.Get().GameOver {
		return
	}

	grid := s.Grid.Get()
	for _, player := range s.Players.Iter() {
		for _, monster := range s.Monsters.Iter() {
			dist := chebyshev(monster.Position.X, monster.Position.Y, player.Position.X, player.Position.Y)
			if dist <= monster.RangedAI.Range {
				s.Attacks.Get().Queue(player.Entity, displayName(monster.Name), monster.CombatStats.Power)
				continue
			}

			stepToward(tick.World, s.Dungeon, grid, monster.Entity, monster.Position, player.Position)
		}
	}
}

// stepToward moves one tile toward the target, preferring the diagonal and
// falling back to a single axis when blocked. The spatial grid is updated in
// place so later movers this turn see the new occupancy.
func stepToward(world *ecs.World, dungeon *Dungeon, grid *SpatialGrid, e ecs.Entity, from *Position, to *Position) {
	dx, dy := 0, 0
	if to.X > from.X {
		dx = 1
	} else if to.X < from.X {
		dx = -1
	}
	if to.Y > from.Y {
		dy = 1
	} else if to.Y < from.Y {
		dy = -1
	}

	candidates := [3][2]int{{dx, dy}, {dx, 0}, {0, dy}}
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		x, y := from.X+c[0], from.Y+c[1]
		if !dungeon.Walkable(x, y) {
			continue
		}
		if blockedAt(world, grid, x, y, e) {
			continue
		}

		from.X = x
		from.Y = y
		grid.Insert(x, y, e)
		return
	}
}

// DamageSystem resolves the turn's queued attacks against defense and hit
// points, logging each hit.
type DamageSystem struct {
	Attacks ecs.Resource[AttackQueue]
	Log     ecs.Resource[EventLog]
}

func (s *DamageSystem) Execute(tick *ecs.Tick) {
	log := s.Log.Get()

	for _, attack := range s.Attacks.Get().Drain() {
		stats := ecs.Get[CombatStats](tick.World, attack.Target)
		if stats == nil {
			continue
		}

		damage := attack.Power - stats.Defense
		if damage <= 0 {
			log.Push("%s is unable to hurt %s.", attack.Attacker, targetName(tick.World, attack.Target))
			continue
		}

		stats.HP -= damage
		log.Push("%s hits %s for %d hp.", attack.Attacker, targetName(tick.World, attack.Target), damage)
	}
}

// DeathSystem despawns entities at zero hit points. Player death ends the
// run instead of despawning.
type DeathSystem struct {
	Log   ecs.Resource[EventLog]
	Turns ecs.Resource[TurnState]
	Mortals ecs.Query[struct {
		ecs.Entity
		*CombatStats
		Name   *Name   `ecs:"optional"`
		Player *Player `ecs:"optional"`
	}]
}

func (s *DeathSystem) Execute(tick *ecs.Tick) {
	for _, mortal := range s.Mortals.Iter() {
		if mortal.CombatStats.HP > 0 {
			continue
		}

		if mortal.Player != nil {
			if !s.Turns.Get().GameOver {
				s.Turns.Get().GameOver = true
				s.Log.Get().Push("You died.")
			}
			continue
		}

		s.Log.Get().Push("%s dies.", displayName(mortal.Name))
		tick.Commands.Despawn(mortal.Entity)
	}
}

func displayName(name *Name) string {
	if name == nil {
		return "Something"
	}
	return name.Value
}

func targetName(world *ecs.World, e ecs.Entity) string {
	if ecs.Has[Player](world, e) {
		return "Player"
	}
	if name := ecs.Get[Name](world, e); name != nil {
		return name.Value
	}
	return "something"
}
