package components

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/neural"
)

func TestPositionDistance(t *testing.T) {
	p := Position{X: 0.1, Y: 0.2}
	q := Position{X: 0.4, Y: 0.6}

	if got := p.Distance(q); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("Distance = %v, want 0.5", got)
	}
	if got := p.Distance(p); got != 0 {
		t.Errorf("Distance to self = %v, want 0", got)
	}
}

func TestRandomPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		p := RandomPosition(rng)
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			t.Fatalf("position %+v outside the unit square", p)
		}
	}
}

func TestRandomMotion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := config.Default()

	for i := 0; i < 50; i++ {
		m := RandomMotion(cfg, rng)
		if m.Rotation < 0 || m.Rotation > 2*math.Pi {
			t.Errorf("rotation %v outside [0, 2pi]", m.Rotation)
		}
		if want := (cfg.SimSpeedMin + cfg.SimSpeedMax) / 2; m.Speed != want {
			t.Errorf("speed = %v, want %v", m.Speed, want)
		}
	}
}

func TestMotionSteer(t *testing.T) {
	cfg := config.Default()
	m := Motion{Rotation: 0.25, Speed: (cfg.SimSpeedMin + cfg.SimSpeedMax) / 2}

	m.Steer(1, 0.5, cfg.SimSpeedMin, cfg.SimSpeedMax)
	if m.Speed != cfg.SimSpeedMax {
		t.Errorf("speed = %v, want clamped to %v", m.Speed, cfg.SimSpeedMax)
	}

	m.Steer(-1, 0.5, cfg.SimSpeedMin, cfg.SimSpeedMax)
	if m.Speed != cfg.SimSpeedMin {
		t.Errorf("speed = %v, want clamped to %v", m.Speed, cfg.SimSpeedMin)
	}

	if math.Abs(float64(m.Rotation-1.25)) > 1e-5 {
		t.Errorf("rotation = %v, want 1.25", m.Rotation)
	}

	// Rotation is not wrapped.
	for i := 0; i < 20; i++ {
		m.Steer(0, 1, cfg.SimSpeedMin, cfg.SimSpeedMax)
	}
	if m.Rotation < 2*math.Pi {
		t.Errorf("rotation = %v, want it to keep accumulating", m.Rotation)
	}
}

func TestRandomAnimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := config.Default()

	a := RandomAnimal(cfg, rng)
	if a.Satiation() != 0 {
		t.Errorf("satiation = %d, want 0", a.Satiation())
	}
	if len(a.Vision()) != cfg.EyeCells {
		t.Errorf("len(vision) = %d, want %d", len(a.Vision()), cfg.EyeCells)
	}
	if a.Eye().Cells() != cfg.EyeCells {
		t.Errorf("eye cells = %d, want %d", a.Eye().Cells(), cfg.EyeCells)
	}
}

func TestAnimalFromChromosome(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := config.Default()

	parent := RandomAnimal(cfg, rng)
	parent.Feed()
	child := AnimalFromChromosome(cfg, parent.AsChromosome())

	if !slices.Equal(child.AsChromosome().Genes(), parent.AsChromosome().Genes()) {
		t.Error("child brain differs from the chromosome it was built from")
	}
	if child.Satiation() != 0 {
		t.Errorf("child satiation = %d, want 0", child.Satiation())
	}
}

func TestAnimalFeed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := RandomAnimal(config.Default(), rng)

	a.Feed()
	a.Feed()
	if a.Satiation() != 2 {
		t.Errorf("satiation = %d, want 2", a.Satiation())
	}
}

func TestAnimalLook(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := config.Default()
	a := RandomAnimal(cfg, rng)

	pos := Position{X: 0.5, Y: 0.5}
	motion := Motion{Rotation: 0}
	ahead := []neural.FoodInfo{{X: 0.55, Y: 0.5}}

	speedDelta, rotationDelta := a.Look(pos, motion, ahead)
	if math.Abs(float64(speedDelta)) > float64(cfg.SimSpeedAccel)+1e-6 {
		t.Errorf("speed delta %v exceeds %v", speedDelta, cfg.SimSpeedAccel)
	}
	if math.Abs(float64(rotationDelta)) > float64(cfg.SimRotationAccel)+1e-6 {
		t.Errorf("rotation delta %v exceeds %v", rotationDelta, cfg.SimRotationAccel)
	}

	var total float32
	for _, v := range a.Vision() {
		total += v
	}
	if total <= 0 {
		t.Errorf("vision = %v, want food straight ahead to be seen", a.Vision())
	}

	// Vision() hands out a copy.
	v := a.Vision()
	v[0] = 99
	if a.Vision()[0] == 99 {
		t.Error("Vision() exposed internal storage")
	}
}
