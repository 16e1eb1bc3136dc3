package eval

// Env is a lexical scope. Lookups walk outward through parents.
type Env struct {
	vars   map[string]Value
	parent *Env
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Child creates a nested scope.
func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]Value), parent: e}
}

// Define binds name in this scope, replacing an existing binding.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

func (e *Env) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
