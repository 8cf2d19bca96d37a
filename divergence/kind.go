package divergence

import (
	"fmt"
	"strings"
)

// Kind identifies one of the built-in divergences.
type Kind int

const (
	// SquaredEuclidean is the classic K-means potential F(v) = v·v.
	SquaredEuclidean Kind = iota
	// RelativeEntropy is Kullback-Leibler divergence on the simplex with the
	// natural logarithm.
	RelativeEntropy
	// DiscreteKL is Kullback-Leibler divergence on the simplex with the
	// discrete (count-data) logarithm.
	DiscreteKL
	// GeneralizedI is the generalized KL / I-divergence on the non-negative
	// orthant with the natural logarithm.
	GeneralizedI
	// DiscreteGeneralizedI is the I-divergence with the discrete logarithm.
	DiscreteGeneralizedI
	// LogisticLoss is KL divergence under the embedding x -> (x, 1-x),
	// defined on the first coordinate in (0, 1).
	LogisticLoss
	// ItakuraSaito is the Burg-entropy divergence F(v) = -sum(log v).
	ItakuraSaito
)

func (k Kind) String() string {
	switch k {
	case SquaredEuclidean:
		return "squared-euclidean"
	case RelativeEntropy:
		return "relative-entropy"
	case DiscreteKL:
		return "discrete-kl"
	case GeneralizedI:
		return "generalized-i"
	case DiscreteGeneralizedI:
		return "discrete-generalized-i"
	case LogisticLoss:
		return "logistic-loss"
	case ItakuraSaito:
		return "itakura-saito"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// KindByName returns the Kind with the given stable name. The "sparse-"
// prefix is accepted as an alias: sparse evaluation is an internal fast path,
// not a separate implementation.
func KindByName(name string) (Kind, bool) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "sparse-")
	switch name {
	case "squared-euclidean", "euclidean":
		return SquaredEuclidean, true
	case "relative-entropy", "kl":
		return RelativeEntropy, true
	case "discrete-kl":
		return DiscreteKL, true
	case "generalized-i", "generalized-kl", "i-divergence":
		return GeneralizedI, true
	case "discrete-generalized-i":
		return DiscreteGeneralizedI, true
	case "logistic-loss":
		return LogisticLoss, true
	case "itakura-saito":
		return ItakuraSaito, true
	default:
		return 0, false
	}
}

// New returns the divergence for the given kind.
func New(k Kind) (Divergence, error) {
	switch k {
	case SquaredEuclidean:
		return NewSquaredEuclidean(), nil
	case RelativeEntropy:
		return NewKLSimplex(NaturalLog, RelativeEntropy), nil
	case DiscreteKL:
		return NewKLSimplex(DiscreteLog, DiscreteKL), nil
	case GeneralizedI:
		return NewGeneralizedI(NaturalLog, GeneralizedI), nil
	case DiscreteGeneralizedI:
		return NewGeneralizedI(DiscreteLog, DiscreteGeneralizedI), nil
	case LogisticLoss:
		return NewLogisticLoss(), nil
	case ItakuraSaito:
		return NewItakuraSaito(), nil
	default:
		return nil, fmt.Errorf("unsupported divergence kind: %v", k)
	}
}
