// Package export runs the export transaction for an open workspace.
//
// Placeholder instancing exists only for the editor and must never reach the
// exported file. The Manager therefore:
//
//  1. Snapshots every actor-bound object (binding and instancing source, in
//     document order) and clears its instancing.
//  2. Builds a View over the document in which each bound object carries its
//     actor name as a literal string custom property, and hands the View to
//     the Exporter together with the output path and options.
//  3. Restores every snapshotted object in capture order, re-resolving any
//     object that had no source before the export.
//
// Step 3 is deferred as soon as step 1 has run, so it executes on every exit
// path: exporter success, exporter error and exporter panic alike.
package export
