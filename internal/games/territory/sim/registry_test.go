package sim_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/games/territory/sim"
)

func TestEntityInvariants(t *testing.T) {
	wall := sim.NewWall(3, 4)
	if wall.Kind() != sim.KindWall || wall.Team() != sim.TeamNone {
		t.Errorf("wall = %s/%s, expected Wall/None", wall.Kind(), wall.Team())
	}
	if !wall.Size().Eq(core.V(1, 1)) {
		t.Errorf("wall size = %v, expected (1, 1)", wall.Size())
	}
	if _, ok := wall.Ball(); ok {
		t.Error("walls have no ball body")
	}
	if wall.Radius() != 0 {
		t.Error("wall radius should be 0")
	}

	ball := sim.NewBall(1, 1, sim.TeamDark, 0, core.V(1, 0))
	if ball.Radius() != sim.DefaultRadius {
		t.Errorf("ball radius = %f, expected default %f", ball.Radius(), sim.DefaultRadius)
	}
	if !ball.Center().Eq(core.V(1.5, 1.5)) {
		t.Errorf("ball center = %v, expected (1.5, 1.5)", ball.Center())
	}
	body, ok := ball.Ball()
	if !ok || !body.Velocity.Eq(core.V(1, 0)) {
		t.Errorf("Ball() = %+v, %v", body, ok)
	}
}

func TestRegistryStorageOrderAndBallIndex(t *testing.T) {
	reg := sim.NewRegistry()

	ids := []sim.EntityID{}
	for _, e := range []sim.Entity{
		sim.NewWall(0, 0),
		sim.NewBall(1, 0, sim.TeamLight, 0.5, core.Vec2{}),
		sim.NewBlock(1, 0, sim.TeamDark),
		sim.NewBlock(2, 0, sim.TeamLight),
	} {
		id, err := reg.Add(e)
		if err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
		ids = append(ids, id)
	}

	for i, id := range ids {
		if int(id) != i {
			t.Errorf("id %d = %d, expected storage index", i, id)
		}
	}

	balls := reg.Balls()
	if len(balls) != 1 || balls[0] != 1 {
		t.Errorf("Balls() = %v, expected [1]", balls)
	}

	var kinds []sim.Kind
	reg.Each(func(_ sim.EntityID, e sim.Entity) {
		kinds = append(kinds, e.Kind())
	})
	expected := []sim.Kind{sim.KindWall, sim.KindBall, sim.KindBlock, sim.KindBlock}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("Each order[%d] = %s, expected %s", i, kinds[i], expected[i])
		}
	}
}

func TestRegistryEntityLimit(t *testing.T) {
	reg := sim.NewRegistry()
	for i := 0; i < sim.MaxEntities; i++ {
		if _, err := reg.Add(sim.NewBlock(float64(i%18), float64(i/18), sim.TeamLight)); err != nil {
			t.Fatalf("Add() #%d failed: %v", i, err)
		}
	}

	_, err := reg.Add(sim.NewWall(0, 0))
	if !errors.Is(err, sim.ErrRegistryFull) {
		t.Errorf("Add() past limit = %v, expected ErrRegistryFull", err)
	}
	if reg.Len() != sim.MaxEntities {
		t.Errorf("Len() = %d, expected %d", reg.Len(), sim.MaxEntities)
	}
}

func TestRegistryBallLimit(t *testing.T) {
	reg := sim.NewRegistry()
	for i := 0; i < sim.MaxBalls; i++ {
		if _, err := reg.Add(sim.NewBall(float64(i), 0, sim.TeamLight, 0.5, core.Vec2{})); err != nil {
			t.Fatalf("Add() ball #%d failed: %v", i, err)
		}
	}

	_, err := reg.Add(sim.NewBall(5, 5, sim.TeamDark, 0.5, core.Vec2{}))
	if !errors.Is(err, sim.ErrTooManyBalls) {
		t.Errorf("third ball = %v, expected ErrTooManyBalls", err)
	}
	if reg.Len() != sim.MaxBalls || reg.BallCount() != sim.MaxBalls {
		t.Errorf("dropped ball must not be stored: Len=%d BallCount=%d", reg.Len(), reg.BallCount())
	}

	// Tiles are still accepted after the ball list is full
	if _, err := reg.Add(sim.NewWall(0, 0)); err != nil {
		t.Errorf("wall after full ball list failed: %v", err)
	}
}

func TestRegistrySealed(t *testing.T) {
	reg := sim.NewRegistry()
	if _, err := reg.Add(sim.NewWall(0, 0)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	sim.NewWorld(reg)
	if !reg.Sealed() {
		t.Fatal("NewWorld should seal the registry")
	}

	if _, err := reg.Add(sim.NewWall(1, 0)); !errors.Is(err, sim.ErrSealed) {
		t.Errorf("Add() after seal = %v, expected ErrSealed", err)
	}
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	reg := sim.NewRegistry()
	id, _ := reg.Add(sim.NewBall(0, 0, sim.TeamLight, 0.5, core.V(2, 0)))

	e, ok := reg.Get(id)
	if !ok {
		t.Fatal("Get() should find the ball")
	}
	body, _ := e.Ball()
	body.Velocity = core.V(9, 9)

	again, _ := reg.Get(id)
	if !again.Velocity().Eq(core.V(2, 0)) {
		t.Errorf("stored velocity changed through a copy: %v", again.Velocity())
	}

	if _, ok := reg.Get(42); ok {
		t.Error("Get() with unknown id should fail")
	}
}

func TestRegistryTally(t *testing.T) {
	reg := sim.NewRegistry()
	reg.Add(sim.NewWall(0, 0))
	reg.Add(sim.NewBlock(1, 0, sim.TeamLight))
	reg.Add(sim.NewBlock(2, 0, sim.TeamLight))
	reg.Add(sim.NewBlock(3, 0, sim.TeamDark))
	reg.Add(sim.NewBlock(4, 0, sim.TeamNone))
	reg.Add(sim.NewBall(1, 0, sim.TeamDark, 0.5, core.Vec2{}))

	tally := reg.Tally()
	if tally.Light != 2 || tally.Dark != 1 || tally.None != 1 {
		t.Errorf("Tally() = %+v, expected Light=2 Dark=1 None=1", tally)
	}
	if tally.Total() != 4 {
		t.Errorf("Total() = %d, expected 4", tally.Total())
	}
}
