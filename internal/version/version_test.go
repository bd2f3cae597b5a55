package version

import (
	"testing"

	"github.com/specialistvlad/crateforge/internal/revision"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Run("revision available", func(t *testing.T) {
		got := Resolve("0.12.0", revision.Explicit("abc1234"))
		assert.Equal(t, "0.12.0 (abc1234)", got)
	})

	t.Run("no revision falls back to dirty", func(t *testing.T) {
		got := Resolve("0.12.0", revision.Info{})
		assert.Equal(t, "0.12.0 (dirty)", got)
	})

	t.Run("whitespace-only revision is unavailable", func(t *testing.T) {
		got := Resolve("1.0.0", revision.Explicit("   "))
		assert.Equal(t, "1.0.0 (dirty)", got)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		rev := revision.Explicit("deadbee")
		assert.Equal(t, Resolve("2.3.4", rev), Resolve("2.3.4", rev))
	})
}
