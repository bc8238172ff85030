// Package config loads the battery settings file.
//
// # File Location
//
// Load resolves the settings path as follows:
//
//  1. If a path is explicitly provided, use it (tilde expanded, made absolute)
//  2. Otherwise, use setting.ini in the current working directory
//
// # Format
//
// The file holds a single Battery section with three integer keys:
//
//	[Battery]
//	batteryUsageHour = 18
//	batteryUsageCorrectionPercentage = 95
//	batteryHealthPercentage = 100
//
// The file is read as INI: a leading UTF-8 byte-order mark, CRLF line
// endings and ';' or '#' comments are accepted. Values are decimal integers;
// leading zeros are allowed and do not mean octal.
//
// # Missing Files
//
// When the file does not exist Load writes the defaults above to disk and
// returns them, so the next run reads the same values back.
//
// # Validation
//
// Values are returned exactly as written. Negative hours or percentages above
// 100 are accepted here and normalized by the estimate package at use time.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures
//   - File read or write errors (except os.ErrNotExist, which triggers defaults)
//   - Parse errors, missing keys and non-integer values, all prefixed with
//     "parse config"
package config
