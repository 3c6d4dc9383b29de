// otse is the OpenTraceSchEdit command-line tool for surgical edits to
// KiCad schematic and project files.
package main

import "github.com/OpenTraceLab/OpenTraceSchEdit/cmd/otse/cmd"

func main() {
	cmd.Execute()
}
