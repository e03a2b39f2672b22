// Package display offers a line-oriented view of a character LCD.
//
// Tools rarely want cursor addressing; they want "put this text on line 2".
// LCD adapts an lcd controller to the Display interface, padding and
// truncating each line to the panel width. Handler owns a Display from a
// single goroutine and renders Message values sent over a channel, so
// producers never touch the bus directly.
//
// Example usage:
//
//	msgs := make(chan display.Message, 4)
//	h := display.NewHandler(display.NewLCD(panel), msgs, logger)
//	go h.Run(ctx)
//
//	msgs <- display.Message{Lines: []string{"Temp  21.5°C", "Hum   40.2%"}}
package display
