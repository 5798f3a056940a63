/*
Package term defines the immutable syntax tree of an Unlambda program and the
parser that produces it.

A Term is one of three node shapes:

  - *Atom: one of the combinators i, s, k, v, d, c, or r (print newline).
  - *Put: the print action .x for a literal character x.
  - *App: the application `AB of a left term to a right term.

Terms are created once by Parse and never mutated afterwards. The machine only
ever holds references into the parsed tree, so a sub-term reachable from many
continuation frames exists exactly once in memory.

# Syntax

	i s k v d c r   combinators
	`AB             application of A to B (prefix notation)
	.x              print the literal character x (any character, including space)
	# ...           comment until end of line

Whitespace is insignificant except for the character that immediately follows
a dot.
*/
package term
