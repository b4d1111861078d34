// Package compileinfo reports how the running binary was built, using the
// module and VCS stamps the Go toolchain embeds.
package compileinfo

import (
	"fmt"
	"io"
	"path"
	"runtime/debug"
)

type CompileInfo struct {
	Command    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

// String renders a one-line banner, e.g.
// "srniel (devel) go1.18 commit 1a2b3c at 2022-06-01T00:00:00Z (modified)".
func (c CompileInfo) String() string {
	name := c.Command
	if name == "" {
		name = "binary"
	}

	version := c.Version
	if version == "" {
		version = "(unknown version)"
	}

	out := fmt.Sprintf("%s %s %s", name, version, c.GoVersion)
	if c.Commit != "" {
		out += " commit " + c.Commit
	}
	if c.CommitTime != "" {
		out += " at " + c.CommitTime
	}
	if c.Modified {
		out += " (modified)"
	}

	return out
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		Command:   path.Base(z.Path),
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

// Fprint writes the banner followed by a newline.
func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}
