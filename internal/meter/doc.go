// Package meter shows sensor readings on a character LCD.
//
// A Source is a sysfs-style file holding one number, as exposed by the
// Linux IIO, hwmon and thermal subsystems (for example
// /sys/bus/iio/devices/iio:device0/in_humidityrelative_input). Each refresh
// reads every source, scales the value and lays it out as "label  value
// unit". When there are more sources than display lines, successive
// refreshes page through them.
//
// Refreshes run on a robfig/cron schedule and hand finished screens to a
// display.Handler channel; a full channel drops the screen rather than
// stall the scheduler.
package meter
