// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Calc is an interpreter for a small calculation language over numbers,
rationals, complex numbers, quaternions, vectors, matrices, tensors,
text and symbolic expressions.

Usage:

	calc [flags] [file ...]

With no files, calc reads standard input. When that is a terminal it
runs an interactive session with line editing and a history kept in
~/.calc_history. Input that is not finished, such as an open bracket or
a trailing operator, continues on the next line.

Flags:

	-c, -config FILE   load settings from a YAML file
	-format VERB       fmt verb for printing numbers (default %.12g)
	-prompt TEXT       interactive prompt (default "calc> ")
	-debug SWITCH      turn on a debug switch; may be repeated
	-trace             log debug output to standard error
	-maxdepth N        maximum depth of the call stack (default 10000)
	-cachesize N       number of elements memoized per sequence
	-e STATEMENTS      evaluate the statements and exit

The debug switches are

	calls      log each function call and its result
	cpu        print the processor time used by each interactive line
	panic      do not recover from errors, so Go stack traces show
	parse      log each compiled statement
	sequence   log sequence element evaluation and cache use
	tokens     log each token the scanner produces
	types      print the kinds of values before the values

The configuration file holds the same settings:

	format: "%.6g"
	tolerance: 1e-12
	prompt: "> "
	max_depth: 500
	cache_size: 1024
	debug: [calls, sequence]

A matrix whose determinant is within the tolerance of zero has no
inverse.

# Statements

Semicolons separate statements on a line. The values of the expressions
on a line are printed on one output line, separated by spaces. The last
printed value is bound to _. Declarations print nothing.

	x = 3                    variable
	f(x, y) = x^2 + y        function
	S[n] = n * 2             general formula of sequence S
	S[5] = 0                 fixed formula for index 5 and above
	P[n](x) = x^n            sequence of functions
	v[1] = 7                 element of a vector or matrix variable
	Physics::g = 9.81        variable in namespace Physics
	delete x                 remove a variable, function or sequence

Values

	3  -2.5  1e9             number
	1\3                      exact rational
	2i  3+4i                 complex
	2j  3k                   quaternion units
	[1, 2, 3]                vector; [[1, 2], [3, 4]] is a matrix
	"text"                   text
	true  false              1 and 0
	$x                       symbol
	@f                       the function f as a value
	&x                       reference to the variable x
	1..5                     the vector [1, 2, 3, 4, 5]

Mixed scalars are promoted along number, rational, complex or
quaternion. Complex numbers and quaternions do not mix. Operations
between a container and a scalar apply to each element.

# Operators

From the tightest binding to the loosest:

	^ ^. ^x .. -> ! :        power (right associative), Kronecker
	                         power, range, members, position
	|                        derivative: $x^2 | $x is 2*x
	x                        cross product
	* . (*) / %              product, dot product, Kronecker
	                         product, division, remainder
	+ -
	<< >>                    shifts; rotation for text
	< <= > >=
	== !=
	and
	or
	when otherwise           v when cond otherwise w

A unary minus binds tighter than the operator that follows it, so -x^2
is (-x)^2 and 5^-2 is 1/25. A trailing ! is factorial and a trailing %
divides by 100, at the end of an expression or before an operator. The
% must touch its operand to be a percentage: 50% - 2 is -1.5 while
7 % -2 is the remainder 1.

# Functions

Functions may be overloaded by arity and parameter names. Arguments are
positional or named, with named ones last:

	f(3, y := 4)

A call that more than one declaration accepts equally well is an
error. A function can be passed by name to a parameter that is then
called, and functions combine arithmetically into new functions:

	twice(f, x) = f(f(x))
	twice(sqrt, 16)
	h = @f + @g

# Sequences

An element is computed with the formula declared at the largest index
not above it, or with the general formula. Inside a formula the index
variable, start and end are bound. Elements are memoized; any
declaration discards the memoized values.

	F[n] = 1
	F[1] = n * F[n - 1]

Reductions over an index range:

	S[1..5]                  collect into a vector
	S[1++5]                  sum
	S[1**5]                  product
	S[1!!5]                  mean
	S[1!%5]                  standard deviation

Loops

	for v in [1, 2, 3] do v * 2

The loop collects the body values. Inside the body _v is the count of
completed iterations.

Members

	[3, 1, 2]!sort           method without arguments
	m->row(0)                method with arguments
	x!kind                   the kind of any value
	Physics!names            the names in a namespace

# Built-in functions

The namespace Math is read-only and imported everywhere. It holds pi, e
and the functions

	sqrt exp ln log sin cos tan asin acos atan
	abs floor ceil round conj
	det inverse transpose adjoint cofactors norm identity size
	complex quaternion rational
	D grad map apply integrate sum mean set nameof

D($x) and grad($x, $y) are operators: D($x) * f differentiates f.

Objects

	r = new Random(42)       r->next, r->int(6), r->normal
	s = new Stats(1, 2, 3)   s->add(4), s->count, s->sum, s->min,
	                         s->max, s->mean, s->stddev, s->reset
*/
package main
