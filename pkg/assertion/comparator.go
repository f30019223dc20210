package assertion

// Comparator is a function that compares an observed aggregated
// value against a spec's threshold(s). It returns whether the
// comparison passed and a short human-readable detail used in the
// verdict message.
type Comparator func(observed float64, spec Spec) (bool, string)
