// Package ir defines the intermediate representation of a stimulus
// sequence: a closed set of typed events, each carrying a bitmask
// operation and a time specification.
//
// The event and time types are sealed tagged unions. A Set event cannot
// exist without a mask and a time; an Initial event cannot carry either.
// "Missing field for this variant" is unrepresentable by construction,
// so the engine never has to re-check field presence at runtime.
//
// The package also provides canonical JSON serialization and a
// content-addressed sequence hash, used by the run journal to identify
// a recorded expansion independently of the config file it came from.
package ir
