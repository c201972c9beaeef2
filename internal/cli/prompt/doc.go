// Package prompt asks the user for the values a command was not given.
//
// Every prompt re-asks until the answer is acceptable. End of input
// aborts with ErrAborted, so a closed or exhausted stdin never loops.
// Passkeys are read without echo when the input is a terminal.
package prompt
