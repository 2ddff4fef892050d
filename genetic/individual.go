package genetic

// Individual is anything the algorithm can rank and breed.
type Individual interface {
	Fitness() float32
	Chromosome() Chromosome
}

// IndividualFactory wraps an offspring chromosome into a new Individual
// whose fitness is not yet known.
type IndividualFactory func(Chromosome) Individual
