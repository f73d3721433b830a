/*
Package cli implements the procsched command line. Every command builds its
own engine from the resolved config, wired to a logging listener and to the
client's stats receiver.
*/
package cli
