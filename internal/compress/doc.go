// Package compress decides how many build targets a variant-aware project
// needs.
//
// Every project starts with one descriptor per variant. Compress groups the
// variants by build type and merges each group into one target when its
// variants are equivalent and no dependency forces the build type to stay
// split. When every build type merged and the resulting targets are
// themselves equivalent, the project collapses into a single target with the
// empty suffix.
//
// Projects must be compressed leaf-first: a dependency that kept a build type
// expanded blocks the same build type in every project that depends on it,
// and a dependency that is not fully compressed blocks the final merge.
//
// Suffix naming:
//
//	""            the project is fully compressed
//	"-debug"      one target for every variant of the debug build type
//	"-freeDebug"  one target for exactly the freeDebug variant
package compress
