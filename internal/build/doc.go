// Package build provides the canonical generation pipeline for refdoc.
//
// A build loads the doclet dump, runs the generator, and then performs the
// optional post-generation steps: link verification, the run manifest and the
// metrics textfile. All execution paths (generate, watch, tests) route
// through BuildService so they share the same behaviour.
package build
