// Package render draws PNG frames of a game board for HTTP clients and
// tooling that want a visual snapshot instead of the JSON state.
package render
