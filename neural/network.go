// Package neural provides the feed-forward networks, eyes and brains that
// drive the simulated animals.
package neural

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/blas/blas32"
)

// LayerTopology describes one layer of a network by its neuron count.
// The first entry of a topology is the input size.
type LayerTopology struct {
	Neurons int
}

// Neuron is a biased linear unit clamped at zero.
type Neuron struct {
	bias    float32
	weights []float32
}

// NewNeuron creates a neuron from its bias and input weights.
func NewNeuron(bias float32, weights []float32) Neuron {
	return Neuron{bias: bias, weights: weights}
}

// Bias returns the neuron's bias.
func (n *Neuron) Bias() float32 { return n.bias }

// Weights returns the neuron's input weights. Callers must not modify them.
func (n *Neuron) Weights() []float32 { return n.weights }

// Propagate returns max(0, bias + inputs·weights).
// Panics if the input count differs from the weight count.
func (n *Neuron) Propagate(inputs []float32) float32 {
	if len(inputs) != len(n.weights) {
		panic(fmt.Sprintf("neural: neuron got %d inputs, has %d weights", len(inputs), len(n.weights)))
	}

	sum := n.bias + blas32.Dot(
		blas32.Vector{N: len(inputs), Inc: 1, Data: inputs},
		blas32.Vector{N: len(n.weights), Inc: 1, Data: n.weights},
	)
	return max(sum, 0)
}

// Layer is a group of neurons fed the same inputs.
type Layer struct {
	neurons []Neuron
}

// NewLayer creates a layer. All neurons must have the same weight count.
func NewLayer(neurons []Neuron) Layer {
	for i := 1; i < len(neurons); i++ {
		if len(neurons[i].weights) != len(neurons[0].weights) {
			panic(fmt.Sprintf("neural: neuron %d has %d weights, neuron 0 has %d",
				i, len(neurons[i].weights), len(neurons[0].weights)))
		}
	}
	return Layer{neurons: neurons}
}

// Neurons returns the layer's neurons. Callers must not modify them.
func (l *Layer) Neurons() []Neuron { return l.neurons }

// Propagate returns one output per neuron.
func (l *Layer) Propagate(inputs []float32) []float32 {
	outputs := make([]float32, len(l.neurons))
	for i := range l.neurons {
		outputs[i] = l.neurons[i].Propagate(inputs)
	}
	return outputs
}

// Network is an immutable stack of layers.
type Network struct {
	layers []Layer
}

// NewNetwork creates a network from prebuilt layers. It panics unless there
// is at least one non-empty layer and each layer's weight count matches the
// previous layer's width.
func NewNetwork(layers []Layer) *Network {
	if len(layers) == 0 {
		panic("neural: network needs at least one layer")
	}
	for i, l := range layers {
		if len(l.neurons) == 0 {
			panic(fmt.Sprintf("neural: layer %d has no neurons", i))
		}
		if i > 0 && len(l.neurons[0].weights) != len(layers[i-1].neurons) {
			panic(fmt.Sprintf("neural: layer %d takes %d inputs, layer %d has %d neurons",
				i, len(l.neurons[0].weights), i-1, len(layers[i-1].neurons)))
		}
	}
	return &Network{layers: layers}
}

// RandomNetwork creates a network with every weight and bias drawn uniformly
// from [-1, 1]. The topology needs an input size and at least one layer.
func RandomNetwork(rng *rand.Rand, topology []LayerTopology) *Network {
	checkTopology(topology)

	layers := make([]Layer, 0, len(topology)-1)
	for i := 1; i < len(topology); i++ {
		inputs := topology[i-1].Neurons
		neurons := make([]Neuron, topology[i].Neurons)
		for j := range neurons {
			bias := randomWeight(rng)
			weights := make([]float32, inputs)
			for k := range weights {
				weights[k] = randomWeight(rng)
			}
			neurons[j] = Neuron{bias: bias, weights: weights}
		}
		layers = append(layers, Layer{neurons: neurons})
	}
	return &Network{layers: layers}
}

// NetworkFromWeights rebuilds a network from the flat order produced by
// Weights: per layer, per neuron, the bias followed by its weights.
// Panics unless weights holds exactly WeightCount(topology) values.
func NetworkFromWeights(topology []LayerTopology, weights []float32) *Network {
	checkTopology(topology)

	want := WeightCount(topology)
	switch {
	case len(weights) < want:
		panic(fmt.Sprintf("neural: weight stream too short: got %d, want %d", len(weights), want))
	case len(weights) > want:
		panic(fmt.Sprintf("neural: weight stream too long: got %d, want %d", len(weights), want))
	}

	cur := &weightCursor{weights: weights}
	layers := make([]Layer, 0, len(topology)-1)
	for i := 1; i < len(topology); i++ {
		inputs := topology[i-1].Neurons
		neurons := make([]Neuron, topology[i].Neurons)
		for j := range neurons {
			bias := cur.next()
			w := make([]float32, inputs)
			for k := range w {
				w[k] = cur.next()
			}
			neurons[j] = Neuron{bias: bias, weights: w}
		}
		layers = append(layers, Layer{neurons: neurons})
	}

	if cur.remaining() != 0 {
		panic(fmt.Sprintf("neural: %d weights left unconsumed", cur.remaining()))
	}
	return &Network{layers: layers}
}

// WeightCount returns how many values a network of this topology holds.
func WeightCount(topology []LayerTopology) int {
	n := 0
	for i := 1; i < len(topology); i++ {
		n += topology[i].Neurons * (1 + topology[i-1].Neurons)
	}
	return n
}

// Propagate feeds inputs through every layer and returns the last layer's output.
func (nn *Network) Propagate(inputs []float32) []float32 {
	for i := range nn.layers {
		inputs = nn.layers[i].Propagate(inputs)
	}
	return inputs
}

// Weights flattens the network: per layer, per neuron, bias then weights.
func (nn *Network) Weights() []float32 {
	out := make([]float32, 0, nn.weightCount())
	for i := range nn.layers {
		for j := range nn.layers[i].neurons {
			n := &nn.layers[i].neurons[j]
			out = append(out, n.bias)
			out = append(out, n.weights...)
		}
	}
	return out
}

// Layers returns the network's layers. Callers must not modify them.
func (nn *Network) Layers() []Layer { return nn.layers }

// Topology reconstructs the topology the network was built from.
func (nn *Network) Topology() []LayerTopology {
	if len(nn.layers) == 0 {
		return nil
	}
	topology := make([]LayerTopology, 0, len(nn.layers)+1)
	inputs := 0
	if first := nn.layers[0].neurons; len(first) > 0 {
		inputs = len(first[0].weights)
	}
	topology = append(topology, LayerTopology{Neurons: inputs})
	for i := range nn.layers {
		topology = append(topology, LayerTopology{Neurons: len(nn.layers[i].neurons)})
	}
	return topology
}

func (nn *Network) weightCount() int {
	n := 0
	for i := range nn.layers {
		for j := range nn.layers[i].neurons {
			n += 1 + len(nn.layers[i].neurons[j].weights)
		}
	}
	return n
}

func checkTopology(topology []LayerTopology) {
	if len(topology) < 2 {
		panic(fmt.Sprintf("neural: topology needs at least 2 entries, got %d", len(topology)))
	}
	for i, l := range topology {
		if l.Neurons <= 0 {
			panic(fmt.Sprintf("neural: layer %d has %d neurons", i, l.Neurons))
		}
	}
}

// randomWeight draws uniformly from [-1, 1].
func randomWeight(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}

// weightCursor walks a flat weight stream in order.
type weightCursor struct {
	weights []float32
	pos     int
}

func (c *weightCursor) next() float32 {
	if c.pos >= len(c.weights) {
		panic("neural: weight stream exhausted")
	}
	w := c.weights[c.pos]
	c.pos++
	return w
}

func (c *weightCursor) remaining() int {
	return len(c.weights) - c.pos
}
