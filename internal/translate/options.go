package translate

// Options control the surface of the generated Python.
type Options struct {
	Indent      string // отступ тела def; по умолчанию четыре пробела
	NoneLiteral string // значение if без else; по умолчанию None
}

// DefaultOptions returns four-space indentation and None.
func DefaultOptions() Options {
	return Options{Indent: "    ", NoneLiteral: "None"}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Indent == "" {
		o.Indent = def.Indent
	}
	if o.NoneLiteral == "" {
		o.NoneLiteral = def.NoneLiteral
	}
	return o
}
