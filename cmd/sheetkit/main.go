package main

import (
	"github.com/deptworks/sheetkit/commands"
)

func main() {
	commands.Execute()
}
