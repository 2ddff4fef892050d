package neural

import (
	"math/rand"

	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/genetic"
)

// BrainOutputs is the number of raw network outputs a brain reads.
const BrainOutputs = 2

// Brain turns vision into speed and rotation changes.
type Brain struct {
	network       *Network
	speedAccel    float32
	rotationAccel float32
}

// BrainTopology returns the network shape for the configured eye and hidden sizes.
func BrainTopology(cfg *config.Config) []LayerTopology {
	return []LayerTopology{
		{Neurons: cfg.EyeCells},
		{Neurons: cfg.BrainNeurons},
		{Neurons: BrainOutputs},
	}
}

// RandomBrain creates a brain with random weights.
func RandomBrain(cfg *config.Config, rng *rand.Rand) *Brain {
	return newBrain(cfg, RandomNetwork(rng, BrainTopology(cfg)))
}

// BrainFromChromosome rebuilds a brain from genes produced by AsChromosome.
// Panics if the chromosome does not match the configured topology.
func BrainFromChromosome(cfg *config.Config, chromosome genetic.Chromosome) *Brain {
	return newBrain(cfg, NetworkFromWeights(BrainTopology(cfg), chromosome.Genes()))
}

func newBrain(cfg *config.Config, network *Network) *Brain {
	return &Brain{
		network:       network,
		speedAccel:    cfg.SimSpeedAccel,
		rotationAccel: cfg.SimRotationAccel,
	}
}

// AsChromosome flattens the network weights into genes.
func (b *Brain) AsChromosome() genetic.Chromosome {
	return genetic.NewChromosome(b.network.Weights())
}

// Network returns the underlying network.
func (b *Brain) Network() *Network { return b.network }

// Propagate returns the speed and rotation deltas for one tick.
// Both raw outputs are clamped to [0, 1] and recentered around zero; their
// sum drives speed and their difference drives rotation.
func (b *Brain) Propagate(vision []float32) (speedDelta, rotationDelta float32) {
	out := b.network.Propagate(vision)

	r0 := clamp(out[0], 0, 1) - 0.5
	r1 := clamp(out[1], 0, 1) - 0.5

	speedDelta = clamp(r0+r1, -b.speedAccel, b.speedAccel)
	rotationDelta = clamp(r0-r1, -b.rotationAccel, b.rotationAccel)
	return speedDelta, rotationDelta
}

func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
