// Package exporter is the glue between exporter backend names, as they appear
// in configuration and on the command line, and the Go code that implements
// them.
//
// Backends live under modules/ and add themselves through Module.Register.
// The app builds the configured backend once per run and hands the resulting
// export.Exporter to the export manager.
package exporter
