// Package config defines the format-agnostic model of a project graph: the
// projects, their variants and the descriptor of every variant, along with
// the Loader interface that fills it from some source.
//
// The config.Model is the single source of truth for the projectgraph and
// executor packages. Concrete loaders, such as the HCL one, live in separate
// packages.
package config
