// Package io provides JSON import and export of computed sunburst layouts.
//
// # Overview
//
// A layout document records every node of a partition in pre-order with
// its parent, depth, weight and coordinates in angle × band space. It is
// what `sunburst layout` prints and what browser clients consume when they
// draw the chart themselves.
//
//	{
//	  "height": 2,
//	  "total_weight": 100,
//	  "focus": 0,
//	  "nodes": [
//	    {"id": 0, "parent": -1, "name": "root", "depth": 0, "weight": 100,
//	     "rect": {"x0": 0, "x1": 6.283, "y0": 0, "y1": 1}},
//	    {"id": 1, "parent": 0, "name": "B", "depth": 1, "weight": 70, "leaf": true,
//	     "rect": {"x0": 0, "x1": 4.398, "y0": 1, "y1": 2}}
//	  ]
//	}
//
// # Export
//
// Use [FromPartition] to capture a partition under a given zoom layout, then
// [WriteJSON] or [ExportJSON] to write it.
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode and validate a document: IDs must be
// dense and in pre-order, and every parent must precede its children.
// [Document.Tree] rebuilds the input tree, with leaf weights as values, so a
// document can be partitioned again.
package io
