// Package commands defines the charlcd CLI and wires dependencies for subcommands.
//
// Commands
//
//   - print       Write text, optionally at a position and with custom glyphs
//   - clear       Clear the display
//   - backlight   Switch the backlight (PCF8574 backpacks)
//   - cursor      Show, hide or blink the cursor
//   - shift       Scroll the display window left or right
//   - contrast    Set contrast, booster and follower (ST7032/ST7036)
//   - icon        Switch icon display or write icon RAM (ST7032/ST7036)
//   - glyph       Manage the custom glyph library and upload glyphs to CGRAM
//
// # Implementation
//
// The root command loads configuration (file, CHARLCD_* environment, flags)
// and a logger before any subcommand runs. Commands that touch hardware build
// the display through app.NewWire. Every invocation runs the controller init
// sequence, which clears the screen, unless --attach is given.
package commands
