package main

import (
	"github.com/InterNutter/instants/internal/command"
	"github.com/InterNutter/instants/internal/command/story"
)

func main() {
	command.Main(
		"instants", "a local administration tool for the story archive",
		story.Command(),
	)
}
