package testutil

import (
	"path/filepath"
	"testing"
)

// GuardDoorScene is the canonical fixture: Guard has a placeholder, Door does
// not, A is bound to Guard, B is bound to Door and C is an unbound mesh.
const GuardDoorScene = `
scene "Level1" {
  export_dir = "//build/"
}

collection "C1" {}

actor "Guard" {
  placeholder = "C1"
}

actor "Door" {}

object "A" {
  type                = "EMPTY"
  actor               = "Guard"
  instance_type       = "COLLECTION"
  instance_collection = "C1"
}

object "B" {
  type  = "EMPTY"
  actor = "Door"
}

object "C" {
  type = "MESH"
}
`

// WriteScene writes a single scene file into a temp directory and returns its
// path.
func WriteScene(t *testing.T, content string) string {
	t.Helper()
	root := WriteFiles(t, map[string]string{"level1.scene.hcl": content})
	return filepath.Join(root, "level1.scene.hcl")
}
