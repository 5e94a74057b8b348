package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegistry_Register_Apply(t *testing.T) {
	out := &bytes.Buffer{}
	Register(&cobra.Command{
		Use: "test:catalog",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("catalog ok")
		},
	})
	Apply()

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"test:catalog"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "catalog ok" {
		t.Errorf("output = %q, want catalog ok", out.String())
	}

	for _, name := range []string{"serve", "prices:update", "stock:update", "images:import",
		"products:import", "products:export", "templates:write", "ozon:import", "cron:start"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRegistry_LockedAfterApply(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when registering after Apply")
		}
	}()
	Register(&cobra.Command{Use: "test:late"})
}
