package catalog

// builtinNames is the command vocabulary shipped with mathclip, grouped the
// way a LaTeX math reference groups it. Order here does not matter; the
// catalog sorts on construction.
var builtinNames = []string{
	// Greek lowercase
	"alpha", "beta", "gamma", "delta", "epsilon", "varepsilon", "zeta", "eta", "theta",
	"vartheta", "iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi", "varpi",
	"rho", "varrho", "sigma", "varsigma", "tau", "upsilon", "phi", "varphi", "chi", "psi",
	"omega",

	// Greek uppercase
	"Gamma", "Delta", "Theta", "Lambda", "Xi", "Pi", "Sigma", "Upsilon", "Phi", "Psi",
	"Omega",

	// Binary operators
	"pm", "mp", "times", "div", "cdot", "ast", "star", "circ", "bullet", "oplus", "ominus",
	"otimes", "oslash", "odot", "bigcirc", "diamond", "uplus", "triangleleft", "triangleright",
	"bigtriangleup", "bigtriangledown", "wedge", "vee", "cap", "cup", "sqcap", "sqcup",
	"amalg", "dagger", "ddagger", "wr", "setminus",

	// Relations
	"leq", "le", "geq", "ge", "equiv", "models", "prec", "succ", "sim", "perp", "preceq",
	"succeq", "simeq", "mid", "ll", "gg", "asymp", "parallel", "subset", "supset", "approx",
	"bowtie", "subseteq", "supseteq", "cong", "sqsubset", "sqsupset", "neq", "ne", "smile",
	"sqsubseteq", "sqsupseteq", "doteq", "frown", "in", "ni", "propto", "vdash", "dashv",
	"notin", "notsubset",

	// Arrows
	"leftarrow", "gets", "longleftarrow", "rightarrow", "to", "longrightarrow", "leftrightarrow",
	"longleftrightarrow", "mapsto", "longmapsto", "hookleftarrow", "hookrightarrow", "leftharpoonup",
	"rightharpoonup", "leftharpoondown", "rightharpoondown", "rightleftharpoons", "Leftarrow",
	"Longleftarrow", "Rightarrow", "Longrightarrow", "Leftrightarrow", "Longleftrightarrow",
	"iff", "implies", "uparrow", "downarrow", "updownarrow", "Uparrow", "Downarrow", "Updownarrow",
	"nearrow", "searrow", "swarrow", "nwarrow",

	// Delimiters
	"left", "right", "big", "Big", "bigg", "Bigg", "langle", "rangle", "lfloor", "rfloor",
	"lceil", "rceil", "lbrace", "rbrace", "lbrack", "rbrack",

	// Large operators
	"sum", "prod", "coprod", "int", "oint", "iint", "iiint", "bigcap", "bigcup", "bigsqcup",
	"bigvee", "bigwedge", "bigodot", "bigotimes", "bigoplus", "biguplus",

	// Functions
	"sin", "cos", "tan", "cot", "sec", "csc", "arcsin", "arccos", "arctan", "arccot",
	"arcsec", "arccsc", "sinh", "cosh", "tanh", "coth", "log", "ln", "lg", "exp", "lim",
	"limsup", "liminf", "sup", "inf", "max", "min", "arg", "det", "dim", "deg", "gcd",
	"hom", "ker", "Pr", "mod", "bmod", "pmod",

	// Accents
	"hat", "check", "breve", "acute", "grave", "tilde", "bar", "vec", "dot", "ddot", "dddot",
	"ddddot", "widehat", "widetilde", "overline", "underline", "overbrace", "underbrace",
	"overrightarrow", "overleftarrow",

	// Fractions & roots
	"frac", "dfrac", "tfrac", "cfrac", "sqrt", "surd",

	// Spacing
	"quad", "qquad", ",", ":", ";", "!", "thinspace", "medspace", "thickspace", "negthinspace",
	"negmedspace", "negthickspace",

	// Text & fonts
	"text", "textrm", "textit", "textbf", "textsf", "texttt", "mathrm", "mathit", "mathbf",
	"mathsf", "mathtt", "mathcal", "mathbb", "mathfrak", "mathscr", "boldsymbol",

	// Structure
	"binom", "choose",

	// Symbols
	"infty", "partial", "nabla", "emptyset", "varnothing", "forall", "exists", "nexists",
	"neg", "lnot", "land", "lor", "angle", "measuredangle", "sphericalangle", "top", "bot",
	"prime", "backslash", "ell", "hbar", "hslash", "imath", "jmath", "wp", "Re", "Im",
	"aleph", "beth", "gimel", "daleth",

	// Dots
	"cdots", "ldots", "vdots", "ddots",

	// Matrices
	"matrix", "pmatrix", "bmatrix", "Bmatrix", "vmatrix", "Vmatrix", "cases", "split",
	"aligned",

	// Miscellaneous
	"displaystyle", "textstyle", "scriptstyle", "scriptscriptstyle", "limits", "nolimits",}

// builtinTemplates maps commands that take arguments to their expansion.
// Empty {} pairs are slots. The matrix family keeps a literal row separator
// inside non-empty braces, so those templates have no slot and the cursor
// lands after the closing brace.
var builtinTemplates = map[string]string{
	// Fractions & roots
	"frac":  "frac{}{}",
	"dfrac": "dfrac{}{}",
	"tfrac": "tfrac{}{}",
	"cfrac": "cfrac{}{}",
	"sqrt":  "sqrt{}",
	"binom": "binom{}{}",

	// Text & fonts
	"text":       "text{}",
	"textrm":     "textrm{}",
	"textit":     "textit{}",
	"textbf":     "textbf{}",
	"textsf":     "textsf{}",
	"texttt":     "texttt{}",
	"mathrm":     "mathrm{}",
	"mathit":     "mathit{}",
	"mathbf":     "mathbf{}",
	"mathsf":     "mathsf{}",
	"mathtt":     "mathtt{}",
	"mathcal":    "mathcal{}",
	"mathbb":     "mathbb{}",
	"mathfrak":   "mathfrak{}",
	"mathscr":    "mathscr{}",
	"boldsymbol": "boldsymbol{}",

	// Accents
	"hat":            "hat{}",
	"check":          "check{}",
	"breve":          "breve{}",
	"acute":          "acute{}",
	"grave":          "grave{}",
	"tilde":          "tilde{}",
	"bar":            "bar{}",
	"vec":            "vec{}",
	"dot":            "dot{}",
	"ddot":           "ddot{}",
	"widehat":        "widehat{}",
	"widetilde":      "widetilde{}",
	"overline":       "overline{}",
	"underline":      "underline{}",
	"overbrace":      "overbrace{}",
	"underbrace":     "underbrace{}",
	"overrightarrow": "overrightarrow{}",
	"overleftarrow":  "overleftarrow{}",

	// Large operators
	"sum":  "sum_{}^{}",
	"prod": "prod_{}^{}",
	"int":  "int_{}^{}",
	"lim":  "lim_{}",

	// Matrices
	"matrix":  `matrix{  \\  }`,
	"pmatrix": `pmatrix{  \\  }`,
	"bmatrix": `bmatrix{  \\  }`,
	"Bmatrix": `Bmatrix{  \\  }`,
	"vmatrix": `vmatrix{  \\  }`,
	"Vmatrix": `Vmatrix{  \\  }`,
	"cases":   `cases{  \\  }`,
}

// Builtin returns the entries of the shipped vocabulary.
func Builtin() []SymbolEntry {
	entries := make([]SymbolEntry, 0, len(builtinNames))
	for _, name := range builtinNames {
		entries = append(entries, SymbolEntry{Name: name, Template: builtinTemplates[name]})
	}
	return entries
}

var defaultCatalog = MustNew(Builtin()...)

// Default returns the shipped catalog. It is built once at process start
// and shared; callers must not expect it to change.
func Default() *Catalog {
	return defaultCatalog
}
