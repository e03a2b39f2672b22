// Package driver provides lcd.Driver implementations on top of periph.io
// I2C buses.
//
// Drivers
//
//   - ST7032   ST7032i / ST7036i controllers with a native I2C interface.
//     Every byte is preceded by a control byte selecting instruction or
//     data register.
//   - PCF8574  HD44780 modules fitted with a PCF8574 I/O expander
//     "backpack". The controller runs in 4-bit mode; each nibble is
//     latched by pulsing E through the expander. The expander also drives
//     the backlight transistor.
//   - Debug    logs every byte through zap, optionally passing it on to
//     another driver.
//
// Open resolves a bus by name through i2creg after host.Init and returns
// the driver selected by Kind. Drivers returned by Open own the bus and
// close it on Close.
package driver
