// Package io reads and writes knitting pattern sets as JSON files.
//
// The file format is an envelope object with a "type" marker, a
// "version" and a list of patterns; each pattern holds rows with
// instruction descriptors and the connections between row mesh ranges:
//
//	{
//	  "type": "knitting pattern",
//	  "version": "0.1",
//	  "patterns": [
//	    {
//	      "id": "swatch",
//	      "rows": [
//	        {"id": 1, "instructions": ["knit", "knit"]},
//	        {"id": 2, "instructions": ["knit", "knit"]}
//	      ],
//	      "connections": [
//	        {"from": {"id": 1}, "to": {"id": 2}}
//	      ]
//	    }
//	  ]
//	}
//
// [ReadJSON] and [ImportJSON] decode and fully resolve a pattern set,
// including mesh links. [WriteJSON] and [ExportJSON] serialize a
// resolved set back to the same format, reconstructing connection
// descriptors from the mesh links, so a set survives a round trip.
package io
