//go:build !windows

package presence

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// ipcPaths lists candidate sockets, including Flatpak and Snap sandboxes
func ipcPaths() []string {
	var dirs []string
	for _, key := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if v := os.Getenv(key); v != "" {
			dirs = append(dirs, v)
		}
	}
	dirs = append(dirs, "/tmp")

	var paths []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("discord-ipc-%d", i)
		for _, dir := range dirs {
			paths = append(paths,
				filepath.Join(dir, name),
				filepath.Join(dir, "app", "com.discordapp.Discord", name),
				filepath.Join(dir, "snap.discord", name),
			)
		}
	}
	return paths
}

func dialSocket(ctx context.Context, path string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", path)
}
