package registry

// Order is a resolved, immutable sequence of descriptors. It is safe for
// concurrent use.
type Order[F any] struct {
	items []Descriptor[F]
}

// Len returns the number of descriptors.
func (o *Order[F]) Len() int {
	return len(o.items)
}

// At returns the i-th descriptor.
func (o *Order[F]) At(i int) Descriptor[F] {
	return o.items[i]
}

// All returns a copy of the ordered descriptors.
func (o *Order[F]) All() []Descriptor[F] {
	return append([]Descriptor[F](nil), o.items...)
}

// IDs returns the descriptor IDs in order.
func (o *Order[F]) IDs() []string {
	ids := make([]string, len(o.items))
	for i, desc := range o.items {
		ids[i] = desc.ID
	}

	return ids
}

// Resolve computes the total order. Among descriptors whose constraints are
// satisfied, the one registered first is emitted first, so the result is
// reproducible. Hints that name unregistered IDs are ignored. A cycle returns
// a *CycleError.
func (r *Registry[F]) Resolve() (*Order[F], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := len(r.items)

	// successors[i] holds the descriptors that must come after i.
	successors := make([][]int, count)
	indegree := make([]int, count)

	addEdge := func(from, to int) {
		successors[from] = append(successors[from], to)
		indegree[to]++
	}

	for i, desc := range r.items {
		for _, id := range desc.Before {
			if j, ok := r.index[id]; ok && j != i {
				addEdge(i, j)
			}
		}

		for _, id := range desc.After {
			if j, ok := r.index[id]; ok && j != i {
				addEdge(j, i)
			}
		}
	}

	// ready stays sorted by registration index.
	ready := make([]int, 0, count)
	for i := range count {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]Descriptor[F], 0, count)
	emitted := make([]bool, count)

	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]

		out = append(out, r.items[next])
		emitted[next] = true

		for _, succ := range successors[next] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = insertSorted(ready, succ)
			}
		}
	}

	if len(out) != count {
		var ids []string
		for i, desc := range r.items {
			if !emitted[i] {
				ids = append(ids, desc.ID)
			}
		}

		return nil, &CycleError{IDs: ids}
	}

	return &Order[F]{items: out}, nil
}

// MustResolve is like Resolve but panics on a cycle.
func (r *Registry[F]) MustResolve() *Order[F] {
	order, err := r.Resolve()
	if err != nil {
		panic(err)
	}

	return order
}

func insertSorted(ready []int, value int) []int {
	pos := len(ready)
	for pos > 0 && ready[pos-1] > value {
		pos--
	}

	ready = append(ready, 0)
	copy(ready[pos+1:], ready[pos:])
	ready[pos] = value

	return ready
}
