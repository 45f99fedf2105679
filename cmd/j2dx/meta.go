package main

import (
	"fmt"

	"github.com/j2dx/j2dx/internal/buildinfo"
)

var descriptionTemplate = `
Browser controller to virtual gamepad bridge
  Version: %s (%s)
           %s
`

func Description() string {
	version, commit, date := buildinfo.Get()
	return fmt.Sprintf(descriptionTemplate, version, commit, date)
}
