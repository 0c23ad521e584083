// Package store keeps the track library titletrunc works on.
//
// The library is a single YAML document:
//
//	albums:
//	  - id: a1
//	    title: Piano Sonatas
//	    artist: Ludwig van Beethoven
//	items:
//	  - id: t1
//	    album_id: a1
//	    track: 1
//	    title: "Piano Sonata No. 14 in C# minor, Op. 27 No. 2: I. Adagio sostenuto"
//	    title_short: ""
//
// Items selects the records whose title is longer than a limit and, unless
// forced, that have no short title yet. SetShortTitle records a choice and
// Save writes the document back atomically. Watch reloads the library when
// the file changes on disk.
package store
