package checkpointer

import (
	"fmt"
	"path/filepath"
)

// Ext is the extension given to checkpoint files
const Ext = ".gob"

// Numbered returns a source of checkpoint filenames. Its n-th call
// returns dir/<prefix><n>.gob, so a prefix of "q" yields q1.gob, q2.gob
// and so on. Each source keeps its own count.
func Numbered(dir, prefix string) func() string {
	n := 0
	return func() string {
		n++
		return filepath.Join(dir, fmt.Sprintf("%s%d%s", prefix, n, Ext))
	}
}
