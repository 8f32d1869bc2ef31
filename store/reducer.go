package store

// Reducer applies one action to state and declares the follow-up effect.
//
// Reducers must be pure apart from mutating state: no I/O, no blocking; all
// such work is expressed through the returned effect. A reducer is never
// invoked concurrently with itself or any other reducer of the same store.
// An action arriving while state is in a shape that cannot logically receive
// it is a composition bug; reducers are expected to panic rather than drop it.
type Reducer[S, A any] interface {
	Reduce(state *S, action A) Effect[A]
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc[S, A any] func(state *S, action A) Effect[A]

func (f ReducerFunc[S, A]) Reduce(state *S, action A) Effect[A] {
	return f(state, action)
}
