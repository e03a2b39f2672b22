// Package app wires application dependencies for the charlcd tools.
//
// It opens the configured bus driver, builds the CharLCD or ExtLCD that
// matches the controller, and exposes it together with the glyph store and
// logger via the Wire struct for commands to use.
package app
