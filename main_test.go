package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate", "seed"} {
		cmd, _, err := root.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
			assert.NotNil(t, cmd.Flags().Lookup("config"), "%s has --config", name)
		}
	}
}
