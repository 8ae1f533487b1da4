package design

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cwbudde/algo-analytics/dsp/filter/sos"
)

// ErrUnsupportedDesign is returned by BuildStrict for a (Kind, Ratio) pair
// without a tabulated design.
var ErrUnsupportedDesign = errors.New("design: unsupported design")

// Kind selects the filter family.
type Kind int

const (
	Butterworth Kind = iota
	Bessel
)

func (k Kind) String() string {
	switch k {
	case Butterworth:
		return "butterworth"
	case Bessel:
		return "bessel"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a case-insensitive family name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth", "butter":
		return Butterworth, nil
	case "bessel":
		return Bessel, nil
	default:
		return 0, fmt.Errorf("design: unknown filter kind %q", s)
	}
}

// Ratio selects the cutoff-to-sample-rate ratio of a tabulated design.
type Ratio int

const (
	Ratio05 Ratio = iota + 1 // 5 %
	Ratio08                  // 8 %
	Ratio10                  // 10 %
)

func (r Ratio) String() string {
	switch r {
	case Ratio05:
		return "5%"
	case Ratio08:
		return "8%"
	case Ratio10:
		return "10%"
	default:
		return fmt.Sprintf("Ratio(%d)", int(r))
	}
}

// ParseRatio accepts "5", "5%", "05p", "0.05" and the same forms for 8 and 10.
func ParseRatio(s string) (Ratio, error) {
	key := strings.TrimSuffix(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "%"), "p")
	switch key {
	case "5", "05", "0.05":
		return Ratio05, nil
	case "8", "08", "0.08":
		return Ratio08, nil
	case "10", "0.1", "0.10":
		return Ratio10, nil
	default:
		return 0, fmt.Errorf("design: unknown ratio %q", s)
	}
}

type key struct {
	kind  Kind
	ratio Ratio
}

// tabulated holds the hand-designed cascades. The first stage carries the
// overall gain; the remaining stages have a normalised {1, 2, 1} numerator.
var tabulated = map[key][]sos.Coefficients{
	// 12th order Butterworth.
	{Butterworth, Ratio10}: {
		{B0: 5.128132645416496e-13, B1: 1.0256265290832993e-12, B2: 5.128132645416496e-13, A1: -1.6358161595128016, A2: 0.6694470835583565},
		{B0: 1, B1: 2, B2: 1, A1: -1.6544507637455192, A2: 0.6884647986656827},
		{B0: 1, B1: 2, B2: 1, A1: -1.6916794338709686, A2: 0.7264588571081657},
		{B0: 1, B1: 2, B2: 1, A1: -1.7472829046575309, A2: 0.7832054857562134},
		{B0: 1, B1: 2, B2: 1, A1: -1.8205716411956112, A2: 0.8580009734763099},
		{B0: 1, B1: 2, B2: 1, A1: -1.9099233994325144, A2: 0.9491897243221484},
	},

	// 14th order Bessel.
	{Bessel, Ratio05}: {
		{B0: 1.3164591487194416e-12, B1: 2.632918297438883e-12, B2: 1.3164591487194416e-12, A1: -1.4967220429743726, A2: 0.5604402298082104},
		{B0: 1, B1: 2, B2: 1, A1: -1.5031754338000556, A2: 0.5684943341991748},
		{B0: 1, B1: 2, B2: 1, A1: -1.5165678617134124, A2: 0.5852950144369798},
		{B0: 1, B1: 2, B2: 1, A1: -1.5380229114586013, A2: 0.6124571676498912},
		{B0: 1, B1: 2, B2: 1, A1: -1.5697380725036985, A2: 0.6531803028874344},
		{B0: 1, B1: 2, B2: 1, A1: -1.6162389834768125, A2: 0.7141683430722784},
		{B0: 1, B1: 2, B2: 1, A1: -1.6894048345910613, A2: 0.8133772402519509},
	},
	{Bessel, Ratio10}: {
		{B0: 6.346130800455662e-09, B1: 1.2692261600911324e-08, B2: 6.346130800455662e-09, A1: -1.0875854483710024, A2: 0.2967242585300517},
		{B0: 1, B1: 2, B2: 1, A1: -1.0931310231047813, A2: 0.3080182221218568},
		{B0: 1, B1: 2, B2: 1, A1: -1.1045919801935986, A2: 0.3317747936513281},
		{B0: 1, B1: 2, B2: 1, A1: -1.1228090927121035, A2: 0.37074660344375854},
		{B0: 1, B1: 2, B2: 1, A1: -1.1493766733713506, A2: 0.43047508936230816},
		{B0: 1, B1: 2, B2: 1, A1: -1.1874264993018948, A2: 0.5228171438494588},
		{B0: 1, B1: 2, B2: 1, A1: -1.244638184591471, A2: 0.6803072537872193},
	},
}

// Lookup returns a copy of the tabulated coefficients for (kind, ratio).
func Lookup(kind Kind, ratio Ratio) ([]sos.Coefficients, bool) {
	c, ok := tabulated[key{kind, ratio}]
	if !ok {
		return nil, false
	}
	return slices.Clone(c), true
}

// Build returns a fresh filter for (kind, ratio). Unknown pairs yield an
// empty filter.
func Build(kind Kind, ratio Ratio) *sos.Filter {
	c, _ := Lookup(kind, ratio)
	return sos.New(c...)
}

// BuildStrict is like Build but reports unknown pairs as
// ErrUnsupportedDesign.
func BuildStrict(kind Kind, ratio Ratio) (*sos.Filter, error) {
	c, ok := Lookup(kind, ratio)
	if !ok {
		return nil, fmt.Errorf("design: %s at %s: %w", kind, ratio, ErrUnsupportedDesign)
	}
	return sos.New(c...), nil
}

// Design names one tabulated (Kind, Ratio) pair.
type Design struct {
	Kind  Kind
	Ratio Ratio
}

// Supported lists every tabulated design, ordered by kind then ratio.
func Supported() []Design {
	out := make([]Design, 0, len(tabulated))
	for k := range tabulated {
		out = append(out, Design{Kind: k.kind, Ratio: k.ratio})
	}
	slices.SortFunc(out, func(a, b Design) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return int(a.Ratio) - int(b.Ratio)
	})
	return out
}

// FromStages builds a filter from caller-supplied {b0, b1, b2, a1, a2}
// tuples, in processing order.
func FromStages(stages [][5]float64) *sos.Filter {
	return sos.FromTuples(stages)
}
