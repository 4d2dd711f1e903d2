// Package buildsys implements the cpybuild build pass: configuration loading,
// source discovery, module name validation and the hand-off to the external
// Cython toolchain.
package buildsys
