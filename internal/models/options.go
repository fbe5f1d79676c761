package models

// Options is a bitmask of the AdGuard rule modifiers that affect how a URL
// rule is enabled, distinct from the ContentType bitmask.
type Options uint8

// Named option bits. Single-option predicates (see Rule.IsSingleOption)
// require exact equality against one of these, never a subset test: a rule
// with EnabledOptions == OptGenericHide|OptElemHide is not "the" GENERICHIDE
// rule for translation purposes.
const (
	OptJSInject Options = 1 << iota
	OptURLBlock
	OptGenericBlock
	OptGenericHide
	OptElemHide

	// optDocument is the set of options implied by the uBO/AdGuard
	// "$document" modifier. It is not itself a single addressable option;
	// Rule.SetDocumentModifier enables it, and Rule.IsDocumentWhiteList
	// checks the recorded $document modifier plus IsWhiteList.
	optDocument = OptJSInject | OptURLBlock | OptGenericBlock | OptGenericHide | OptElemHide
)

// Has reports whether all bits in other are set in o.
func (o Options) Has(other Options) bool { return o&other == other }
