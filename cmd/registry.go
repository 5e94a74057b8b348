package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"larana.GO/core/registry"
)

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register queues a command for the root. Call from init(); panics after Apply.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

// Apply attaches the queued commands to root in name order and locks the registry.
func Apply() {
	list := registered()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	for _, c := range list {
		if c.Parent() == nil {
			rootCmd.AddCommand(c)
		}
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
