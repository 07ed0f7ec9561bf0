package game

import (
	"math/rand/v2"

	"github.com/mawside/cellar/ecs"
)

// Session is a fully wired game: world, scheduler, map, and the resources
// the frontend talks to.
type Session struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Dungeon   *Dungeon
	PlayerID  ecs.Entity

	intent *ecs.Resource[PlayerIntent]
	turns  *ecs.Resource[TurnState]
	log    *ecs.Resource[EventLog]
}

// Options configures a new session.
type Options struct {
	MapWidth  int
	MapHeight int
	MaxRooms  int
	Seed      uint64
	Spawns    SpawnConfig
}

// DefaultOptions returns a playable default setup.
func DefaultOptions() Options {
	return Options{
		MapWidth:  80,
		MapHeight: 40,
		MaxRooms:  12,
		Seed:      1,
		Spawns:    DefaultSpawnConfig(),
	}
}

// NewSession generates the map, spawns the player and monsters, and
// registers the turn pipeline. The same options always build the same game.
func NewSession(opts Options) *Session {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	world := ecs.NewWorld(registry)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	dungeon := GenerateDungeon(opts.MapWidth, opts.MapHeight, opts.MaxRooms, rng)

	s := &Session{
		World:   world,
		Dungeon: dungeon,
		intent:  ecs.NewResource(world, PlayerIntent{}),
		turns:   ecs.NewResource(world, TurnState{}),
		log:     ecs.NewResource(world, EventLog{}),
	}
	ecs.NewResource(world, NewSpatialGrid())
	ecs.NewResource(world, AttackQueue{})

	s.PlayerID = spawnPlayer(world, dungeon)
	spawnMonsters(world, dungeon, opts.Spawns, rng)

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&SpatialIndexSystem{})
	scheduler.Register(&PlayerActionSystem{Dungeon: dungeon})
	scheduler.Register(&MeleeAISystem{Dungeon: dungeon})
	scheduler.Register(&RangedAISystem{Dungeon: dungeon})
	scheduler.Register(&DamageSystem{})
	scheduler.Register(&DeathSystem{})
	scheduler.Register(&TurnSystem{})
	s.Scheduler = scheduler

	s.log.Get().Push("You descend into the cellar.")
	return s
}

// Act performs one player turn in the given direction and steps the world.
func (s *Session) Act(dx, dy int) {
	intent := s.intent.Get()
	intent.DX, intent.DY = dx, dy
	intent.Pending = true
	s.Scheduler.Step(1.0)
}

// Wait passes the turn without moving.
func (s *Session) Wait() {
	s.Act(0, 0)
}

// Turn returns the completed turn count.
func (s *Session) Turn() int {
	return s.turns.Get().Turn
}

// GameOver reports whether the player has died.
func (s *Session) GameOver() bool {
	return s.turns.Get().GameOver
}

// Messages returns the n most recent log lines, oldest first.
func (s *Session) Messages(n int) []string {
	return s.log.Get().Recent(n)
}

func spawnPlayer(world *ecs.World, dungeon *Dungeon) ecs.Entity {
	x, y := 1, 1
	if len(dungeon.Rooms) > 0 {
		x, y = dungeon.Rooms[0].Center()
	}

	return world.Spawn(
		Player{},
		Position{X: x, Y: y},
		Renderable{Glyph: '@', Fg: RGB{R: 255, G: 255, B: 0}},
		Name{Value: "Player"},
		BlocksTile{},
		CombatStats{HP: 30, MaxHP: 30, Defense: 2, Power: 5},
	)
}

func spawnMonsters(world *ecs.World, dungeon *Dungeon, cfg SpawnConfig, rng *rand.Rand) {
	if len(cfg.Monsters) == 0 {
		return
	}

	// The first room belongs to the player.
	for _, room := range dungeon.Rooms[min(1, len(dungeon.Rooms)):] {
		count := rng.IntN(cfg.MaxPerRoom + 1)
		occupied := make(map[[2]int]bool)

		for i := 0; i < count; i++ {
			x := room.X1 + rng.IntN(room.X2-room.X1+1)
			y := room.Y1 + rng.IntN(room.Y2-room.Y1+1)
			if occupied[[2]int{x, y}] {
				continue
			}
			occupied[[2]int{x, y}] = true

			spawnMonster(world, cfg.pick(rng), x, y)
		}
	}
}

func spawnMonster(world *ecs.World, spec MonsterSpec, x, y int) ecs.Entity {
	components := []any{
		Position{X: x, Y: y},
		Renderable{Glyph: spec.glyph(), Fg: RGB{R: 255, G: 64, B: 64}},
		Name{Value: spec.Name},
		Hostile{},
		BlocksTile{},
		CombatStats{HP: spec.HP, MaxHP: spec.HP, Defense: spec.Defense, Power: spec.Power},
	}

	if spec.AI == "ranged" {
		components = append(components, RangedAI{Range: spec.Range})
	} else {
		components = append(components, MeleeAI{})
	}

	return world.Spawn(components...)
}
