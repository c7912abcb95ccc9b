// Package concat runs one invocation of catr: it opens each path token in
// order, renders its lines with a counter shared by the whole run, and
// reports tokens that fail without stopping the others.
package concat
