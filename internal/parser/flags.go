package parser

// Prefixes is a bit set of the literals that mark an argument as a command.
type Prefixes int

// Prefix flags, in declaration order.
const (
	PrefixNone         Prefixes = 0
	PrefixForwardSlash Prefixes = 1 << 1
	PrefixSingleHyphen Prefixes = 1 << 2
	PrefixDoubleHyphen Prefixes = 1 << 3
)

// Separators is a bit set of the literals that split a command key from its value.
type Separators int

// Separator flags, in declaration order.
const (
	SeparatorNone   Separators = 0
	SeparatorEquals Separators = 1 << 1
	SeparatorColon  Separators = 1 << 2
)

// flagLiteral pairs a flag with the literal text it stands for.
type flagLiteral[F ~int] struct {
	flag    F
	literal string
}

// Declaration order decides the trial order when several flags are set.
var (
	prefixLiterals = []flagLiteral[Prefixes]{
		{PrefixForwardSlash, "/"},
		{PrefixSingleHyphen, "-"},
		{PrefixDoubleHyphen, "--"},
	}
	separatorLiterals = []flagLiteral[Separators]{
		{SeparatorEquals, "="},
		{SeparatorColon, ":"},
	}
)

// flagValues returns the literals of every declared flag contained in value.
// Zero flags never match.
func flagValues[F ~int](value F, declared []flagLiteral[F]) []string {
	literals := make([]string, 0, len(declared))
	for _, d := range declared {
		if d.flag != 0 && value&d.flag == d.flag {
			literals = append(literals, d.literal)
		}
	}
	return literals
}

// Has reports whether every flag in other is set.
func (p Prefixes) Has(other Prefixes) bool { return other != 0 && p&other == other }

// Literals returns the prefix strings for the set flags in declaration order.
func (p Prefixes) Literals() []string { return flagValues(p, prefixLiterals) }

// Has reports whether every flag in other is set.
func (s Separators) Has(other Separators) bool { return other != 0 && s&other == other }

// Literals returns the separator strings for the set flags in declaration order.
func (s Separators) Literals() []string { return flagValues(s, separatorLiterals) }
