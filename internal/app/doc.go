// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the commands that load a scene document,
// edit its actor registry and run exports, decoupled from any specific
// entrypoint like a CLI.
package app
