// Package config manages taskmap workspace discovery and configuration.
//
// It handles:
//   - Locating the .taskmap workspace directory
//   - Reading and writing .taskmap/config.json
//   - Defaults for history depth, grouping, storage quota and save debouncing
package config
