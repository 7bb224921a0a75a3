package parser

// RuleSet describes the grammar a Parser accepts.
//
// AllowMultipleValues and AllowSwitches are carried for consumers that want to
// honour them; the parser itself splits on the multi-value delimiter and emits
// key-only commands whenever the argument's shape calls for it.
type RuleSet struct {
	Prefixes            Prefixes
	Separators          Separators
	AllowMultipleValues bool
	AllowSwitches       bool
}

// WindowsProfile returns the rule set for "/key=value" and "-key:value" style arguments.
func WindowsProfile() RuleSet {
	return RuleSet{
		Prefixes:            PrefixForwardSlash | PrefixSingleHyphen,
		Separators:          SeparatorEquals | SeparatorColon,
		AllowMultipleValues: true,
		AllowSwitches:       true,
	}
}

// UnixProfile returns the rule set for "-k=value" and "--key=value" style arguments.
func UnixProfile() RuleSet {
	return RuleSet{
		Prefixes:            PrefixSingleHyphen | PrefixDoubleHyphen,
		Separators:          SeparatorEquals | SeparatorColon,
		AllowMultipleValues: true,
		AllowSwitches:       true,
	}
}

// Copy overwrites every setting of r with the settings of from.
func (r *RuleSet) Copy(from RuleSet) {
	*r = from
}
