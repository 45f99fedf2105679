// Package registry imports every controller family so their init functions
// register them with the device package.
package registry

import (
	_ "github.com/j2dx/j2dx/device/ds4"
	_ "github.com/j2dx/j2dx/device/xbox360"
)
