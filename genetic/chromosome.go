// Package genetic implements the genetic algorithm that turns one generation
// of individuals into the next: selection, crossover, mutation and the
// statistics reported for each generation.
package genetic

import (
	"iter"
	"slices"
)

// Chromosome is an ordered sequence of genes. For the simulation each gene
// is one weight or bias of an animal's brain.
type Chromosome struct {
	genes []float32
}

// NewChromosome builds a chromosome from a copy of genes.
func NewChromosome(genes []float32) Chromosome {
	return Chromosome{genes: slices.Clone(genes)}
}

// Len returns the number of genes.
func (c Chromosome) Len() int {
	return len(c.genes)
}

// At returns the gene at index i.
func (c Chromosome) At(i int) float32 {
	return c.genes[i]
}

// All iterates over the genes in order.
func (c Chromosome) All() iter.Seq2[int, float32] {
	return slices.All(c.genes)
}

// Genes returns a copy of the genes.
func (c Chromosome) Genes() []float32 {
	return slices.Clone(c.genes)
}
