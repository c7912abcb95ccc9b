// Package source resolves path tokens to line streams.
//
// The token "-" selects standard input; any other token is opened as a file
// through an afero.Fs. A token that cannot be opened yields an *OpenError
// carrying the token and the underlying cause, and nothing is left open.
//
// Lines keep their terminator so that output can reproduce the input byte for
// byte. Only "\n" terminates a line; a preceding "\r" is ordinary content.
package source
