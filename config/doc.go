// Package config loads titletrunc settings.
//
// Settings are layered, each source overriding the previous one:
//
//  1. Default values
//  2. A YAML (.yaml, .yml) or TOML (.toml) file, either given explicitly or
//     found by FindFile
//  3. A .env file in the working directory, when present
//  4. TITLETRUNC_* environment variables
//  5. Command line flags, applied by the caller
//
// Schema describes the file format as JSON Schema.
package config
