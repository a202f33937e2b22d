// Package hcl_adapter stores scene documents as HCL files.
//
// A scene file holds exactly one scene block plus any number of collection,
// actor and object blocks. Loading produces a saved *scene.Document and its
// *actor.Registry; saving writes them back in a stable order.
package hcl_adapter
