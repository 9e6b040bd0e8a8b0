// Package creole rewrites Google Code wiki markup into Creole.
//
// A page body flows through a fixed sequence of stages (see DefaultStages).
// Spans that must survive later stages untouched, such as preformatted blocks
// and rendered links, are moved out of the text into a Segments table and
// replaced by sentinel tokens; the restore stage splices them back.
package creole
