// Package wikigraph turns wikipedia xml dumps into graph entities.
//
// The dumps are available from the wikimedia group here:
//	http://dumps.wikimedia.org/
//
// A Parser streams pages out of a dump one at a time, the transform
// functions turn pages into article/category nodes and typed
// relationship pairs, and the graph subpackage batches those into an
// external graph store.
//
// See tools/neoload for a complete import pipeline.
package wikigraph
