// Package uischema compiles the UI-hint sidecar that accompanies a compiled
// answer schema. Each top-level question gets one entry keyed by its id;
// rendering hints only come from the definition itself (the TrueOrFalse
// widget) or from operator override files loaded with LoadFS and applied
// through a Decorator.
package uischema
