/*
Package driver runs text command streams against a scheduler engine.

Input is line oriented. Each non-blank line is one instruction, a mnemonic
followed by whitespace separated integer arguments:

	in            reset the engine
	cr <priority> create a child of the running process
	de <pid>      destroy a process and its descendants
	rq <rid> <n>  request n units of a resource class
	rl <rid> <n>  release a grant of exactly n units
	to            time out the running process

Blank lines separate batches. Every batch starts from a freshly reset engine
and produces one output line: the result of each instruction, space separated,
with -1 for a rejected instruction or an unknown mnemonic.
*/
package driver
