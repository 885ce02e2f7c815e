// Package taker runs a questionnaire in the terminal. Each question variant
// maps to a prompt; invalid input is reported and asked again, and the
// collected answer document is validated before it is returned.
package taker
